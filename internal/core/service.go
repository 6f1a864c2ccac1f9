package core

import (
	"context"
	"errors"
	"fmt"
	"foodwhere/pkg/domain"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Operation names reported to logs and metrics.
const (
	OpLoad         = "load"
	OpSave         = "save"
	OpAddStall     = "add_stall"
	OpEditStall    = "edit_stall"
	OpDeleteStall  = "delete_stall"
	OpAddReview    = "add_review"
	OpEditReview   = "edit_review"
	OpDeleteReview = "delete_review"
	OpSortStalls   = "sort_stalls"
	OpSortReviews  = "sort_reviews"
	OpReset        = "reset"
)

// ReviewDraft holds the data fields of a review before it is attached to a
// stall.
type ReviewDraft struct {
	Date    domain.Date
	Content domain.Content
	Rating  domain.Rating
	Details domain.DetailSet
}

// Service runs user-level operations against an address book. Stalls and
// reviews are addressed by their 1-based position in the displayed
// (possibly filtered) lists, and every successful change is saved through
// the snapshot store.
type Service struct {
	ops          sync.Mutex
	mu           sync.Mutex
	book         *AddressBook
	store        domain.SnapshotStore
	logger       *zap.Logger
	metrics      MetricsRecorder
	stallFilter  func(*domain.Stall) bool
	reviewFilter func(*domain.Review) bool
}

// Option customises a Service.
type Option func(*Service)

// WithLogger sets the structured logger. Defaults to zap.NewNop.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithBook starts the service from an existing address book.
func WithBook(book *AddressBook) Option {
	return func(s *Service) {
		if book != nil {
			s.book = book
		}
	}
}

// NewService constructs a service persisting through store. A nil store
// keeps the book in memory only.
func NewService(store domain.SnapshotStore, opts ...Option) *Service {
	s := &Service{
		book:    NewAddressBook(),
		store:   store,
		logger:  zap.NewNop(),
		metrics: noopMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Book returns the underlying address book.
func (s *Service) Book() *AddressBook { return s.book }

// Load replaces the book contents with the stored document. The book is
// left untouched when the store is empty or the document is invalid.
func (s *Service) Load(ctx context.Context) error {
	s.ops.Lock()
	defer s.ops.Unlock()
	return s.observe(ctx, OpLoad, func() error {
		if s.store == nil {
			return fmt.Errorf("load: %w", domain.ErrNoSnapshot)
		}
		doc, err := s.store.Load(ctx)
		if err != nil {
			return err
		}
		stalls, err := doc.Decode()
		if err != nil {
			return err
		}
		loaded, err := NewAddressBookFrom(stalls)
		if err != nil {
			return err
		}
		return s.book.ResetData(loaded)
	}, zap.Bool("persisted", s.store != nil))
}

// LoadOrSample loads the stored book, falling back to the sample data when
// nothing has been saved. It reports whether the sample was used.
func (s *Service) LoadOrSample(ctx context.Context) (bool, error) {
	err := s.Load(ctx)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrNoSnapshot) {
		return false, err
	}
	s.logger.Info("no saved address book, starting with sample data")
	return true, s.Reset(ctx, SampleAddressBook())
}

// Save writes the current book through the store.
func (s *Service) Save(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	return s.observe(ctx, OpSave, func() error {
		return s.store.Save(ctx, s.book.Document())
	})
}

// Reset replaces the whole book with other and saves it.
func (s *Service) Reset(ctx context.Context, other *AddressBook) error {
	return s.mutate(ctx, OpReset, func() error {
		return s.book.ResetData(other)
	})
}

// AddStall adds stall and returns it.
func (s *Service) AddStall(ctx context.Context, stall *domain.Stall) (*domain.Stall, error) {
	err := s.mutate(ctx, OpAddStall, func() error {
		return s.book.AddStall(stall)
	}, stallField(stall))
	if err != nil {
		return nil, err
	}
	return stall, nil
}

// EditStall applies patch to the displayed stall at index and returns the
// edited stall. Renaming re-keys the stall's reviews.
func (s *Service) EditStall(ctx context.Context, index int, patch domain.StallPatch) (*domain.Stall, error) {
	var edited *domain.Stall
	err := s.mutate(ctx, OpEditStall, func() error {
		if patch.IsEmpty() {
			return ErrEmptyPatch
		}
		target, err := s.stallAt(index)
		if err != nil {
			return err
		}
		if edited, err = patch.Apply(target); err != nil {
			return err
		}
		return s.book.SetStall(target, edited)
	}, zap.Int("index", index))
	if err != nil {
		return nil, err
	}
	return edited, nil
}

// DeleteStall removes the displayed stall at index with all its reviews.
func (s *Service) DeleteStall(ctx context.Context, index int) (*domain.Stall, error) {
	var target *domain.Stall
	err := s.mutate(ctx, OpDeleteStall, func() error {
		var err error
		if target, err = s.stallAt(index); err != nil {
			return err
		}
		return s.book.RemoveStall(target)
	}, zap.Int("index", index))
	if err != nil {
		return nil, err
	}
	return target, nil
}

// AddReview attaches a review built from draft to the displayed stall at
// stallIndex.
func (s *Service) AddReview(ctx context.Context, stallIndex int, draft ReviewDraft) (*domain.Review, error) {
	var review *domain.Review
	err := s.mutate(ctx, OpAddReview, func() error {
		owner, err := s.stallAt(stallIndex)
		if err != nil {
			return err
		}
		review, err = domain.NewReview(owner.Name(), draft.Date, draft.Content, draft.Rating, draft.Details)
		if err != nil {
			return err
		}
		return s.book.AddReview(review)
	}, zap.Int("stall_index", stallIndex))
	if err != nil {
		return nil, err
	}
	return review, nil
}

// EditReview applies patch to the displayed review at index.
func (s *Service) EditReview(ctx context.Context, index int, patch domain.ReviewPatch) (*domain.Review, error) {
	var edited *domain.Review
	err := s.mutate(ctx, OpEditReview, func() error {
		if patch.IsEmpty() {
			return ErrEmptyPatch
		}
		target, err := s.reviewAt(index)
		if err != nil {
			return err
		}
		if edited, err = patch.Apply(target); err != nil {
			return err
		}
		return s.book.SetReview(target, edited)
	}, zap.Int("index", index))
	if err != nil {
		return nil, err
	}
	return edited, nil
}

// DeleteReview removes the displayed review at index.
func (s *Service) DeleteReview(ctx context.Context, index int) (*domain.Review, error) {
	var target *domain.Review
	err := s.mutate(ctx, OpDeleteReview, func() error {
		var err error
		if target, err = s.reviewAt(index); err != nil {
			return err
		}
		return s.book.RemoveReview(target)
	}, zap.Int("index", index))
	if err != nil {
		return nil, err
	}
	return target, nil
}

// SortStalls orders stalls by the named criterion.
func (s *Service) SortStalls(ctx context.Context, keyword string) (domain.StallOrder, error) {
	var order domain.StallOrder
	err := s.mutate(ctx, OpSortStalls, func() error {
		var err error
		if order, err = domain.StallOrderFor(keyword); err != nil {
			return err
		}
		return s.book.SortStalls(order.Compare)
	}, zap.String("criteria", keyword))
	return order, err
}

// SortReviews orders the review list by the named criterion.
func (s *Service) SortReviews(ctx context.Context, keyword string) (domain.ReviewOrder, error) {
	var order domain.ReviewOrder
	err := s.mutate(ctx, OpSortReviews, func() error {
		var err error
		if order, err = domain.ReviewOrderFor(keyword); err != nil {
			return err
		}
		return s.book.SortReviews(order.Compare)
	}, zap.String("criteria", keyword))
	return order, err
}

// FindStalls narrows the displayed stalls to names containing any keyword
// as a whole word and returns them.
func (s *Service) FindStalls(keywords ...string) []*domain.Stall {
	match := NameMatcher(keywords...)
	s.mu.Lock()
	s.stallFilter = func(st *domain.Stall) bool { return match(st.Name()) }
	s.mu.Unlock()
	return s.DisplayedStalls()
}

// FindReviews narrows the displayed reviews to those whose stall name
// contains any keyword as a whole word.
func (s *Service) FindReviews(keywords ...string) []*domain.Review {
	match := NameMatcher(keywords...)
	s.mu.Lock()
	s.reviewFilter = func(r *domain.Review) bool { return match(r.Name()) }
	s.mu.Unlock()
	return s.DisplayedReviews()
}

// ListStalls clears the stall filter and returns every stall.
func (s *Service) ListStalls() []*domain.Stall {
	s.mu.Lock()
	s.stallFilter = nil
	s.mu.Unlock()
	return s.DisplayedStalls()
}

// ListReviews clears the review filter and returns every review.
func (s *Service) ListReviews() []*domain.Review {
	s.mu.Lock()
	s.reviewFilter = nil
	s.mu.Unlock()
	return s.DisplayedReviews()
}

// ListAll clears both filters.
func (s *Service) ListAll() {
	s.ListStalls()
	s.ListReviews()
}

// DisplayedStalls returns the stalls that pass the current filter.
func (s *Service) DisplayedStalls() []*domain.Stall {
	s.mu.Lock()
	keep := s.stallFilter
	s.mu.Unlock()
	return filtered(s.book.Stalls(), keep)
}

// DisplayedReviews returns the reviews that pass the current filter.
func (s *Service) DisplayedReviews() []*domain.Review {
	s.mu.Lock()
	keep := s.reviewFilter
	s.mu.Unlock()
	return filtered(s.book.Reviews(), keep)
}

func (s *Service) stallAt(index int) (*domain.Stall, error) {
	shown := s.DisplayedStalls()
	if index < 1 || index > len(shown) {
		return nil, InvalidIndexError{Entity: domain.EntityStall, Index: index, Size: len(shown)}
	}
	return shown[index-1], nil
}

func (s *Service) reviewAt(index int) (*domain.Review, error) {
	shown := s.DisplayedReviews()
	if index < 1 || index > len(shown) {
		return nil, InvalidIndexError{Entity: domain.EntityReview, Index: index, Size: len(shown)}
	}
	return shown[index-1], nil
}

// mutate runs fn, then saves. Operations are serialised so that an index
// resolved inside fn still names the same element when the book changes. A
// failed save is returned but the in-memory change is kept, matching what
// the user already sees.
func (s *Service) mutate(ctx context.Context, op string, fn func() error, fields ...zap.Field) error {
	s.ops.Lock()
	defer s.ops.Unlock()
	if err := s.observe(ctx, op, fn, fields...); err != nil {
		return err
	}
	if rec, ok := s.metrics.(BookSizeRecorder); ok {
		stalls, reviews := s.book.Stalls(), s.book.Reviews()
		rec.ObserveBookSize(len(stalls), len(reviews))
	}
	if err := s.Save(ctx); err != nil {
		return fmt.Errorf("save after %s: %w", op, err)
	}
	return nil
}

func (s *Service) observe(ctx context.Context, op string, fn func() error, fields ...zap.Field) error {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	s.metrics.Observe(ctx, op, err == nil, elapsed)
	fields = append(fields, zap.String("op", op), zap.Duration("elapsed", elapsed))
	if err != nil {
		s.logger.Warn("operation failed", append(fields, zap.Error(err))...)
		return err
	}
	s.logger.Debug("operation completed", append(fields, zap.Stringer("book", s.book))...)
	return nil
}

func stallField(stall *domain.Stall) zap.Field {
	if stall == nil {
		return zap.Skip()
	}
	return zap.String("stall", stall.Name().String())
}

func filtered[E any](items []*E, keep func(*E) bool) []*E {
	if keep == nil {
		return items
	}
	return slices.DeleteFunc(items, func(e *E) bool { return !keep(e) })
}
