package repository

import (
	"context"
	"errors"
	"time"

	"tooltrack/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID         int64      `gorm:"column:id;primaryKey"`
	UserID     int64      `gorm:"column:user_id;index"`
	ToolID     int64      `gorm:"column:tool_id;index"`
	StartDate  time.Time  `gorm:"column:start_date;index"`
	EndDate    time.Time  `gorm:"column:end_date"`
	Duration   int        `gorm:"column:duration"`
	Purpose    string     `gorm:"column:purpose"`
	Status     string     `gorm:"column:status;index"`
	Cost       *float64   `gorm:"column:cost"`
	FuelUsed   *float64   `gorm:"column:fuel_used"`
	ApprovedBy *int64     `gorm:"column:approved_by"`
	ApprovedAt *time.Time `gorm:"column:approved_at"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`

	User *userModel `gorm:"foreignKey:UserID"`
	Tool *toolModel `gorm:"foreignKey:ToolID"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	b := &domain.Booking{
		ID:         m.ID,
		UserID:     m.UserID,
		ToolID:     m.ToolID,
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
		Duration:   m.Duration,
		Purpose:    m.Purpose,
		Status:     domain.BookingStatus(m.Status),
		Cost:       m.Cost,
		FuelUsed:   m.FuelUsed,
		ApprovedBy: m.ApprovedBy,
		ApprovedAt: m.ApprovedAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.User != nil {
		b.User = toDomainUser(*m.User)
	}
	if m.Tool != nil {
		b.Tool = toDomainTool(*m.Tool)
	}
	return b
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:         b.ID,
		UserID:     b.UserID,
		ToolID:     b.ToolID,
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		Duration:   b.Duration,
		Purpose:    b.Purpose,
		Status:     string(b.Status),
		Cost:       b.Cost,
		FuelUsed:   b.FuelUsed,
		ApprovedBy: b.ApprovedBy,
		ApprovedAt: b.ApprovedAt,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// blockingStatuses are the statuses that participate in the no-overlap
// invariant. Denied and completed bookings never block an interval.
var blockingStatuses = []string{
	string(domain.BookingPending),
	string(domain.BookingApproved),
}

// hasConflictTx runs the strict half-open intersection test
// (start_A < end_B AND end_A > start_B) against pending/approved bookings
// of the tool, optionally excluding one booking id. Back-to-back
// intervals (end_A == start_B) are not conflicts.
func hasConflictTx(tx *gorm.DB, toolID int64, start, end time.Time, excludeID int64) (bool, error) {
	q := tx.Model(&bookingModel{}).
		Where("tool_id = ?", toolID).
		Where("status IN ?", blockingStatuses).
		Where("start_date < ? AND end_date > ?", end, start)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// HasConflict is the read-only conflict pre-check. Pass excludeID 0 when
// there is no booking to exclude.
func (r *BookingRepository) HasConflict(ctx context.Context, toolID int64, start, end time.Time, excludeID int64) (bool, error) {
	return hasConflictTx(r.db.WithContext(ctx), toolID, start, end, excludeID)
}

// ApprovalSideEffect runs inside the approval transaction, after the
// status change has been staged. Replacing it swaps the resource-status
// policy without touching conflict logic.
type ApprovalSideEffect func(tx *gorm.DB, toolID int64) error

// MarkToolInUse is the default approval side effect: the tool leaves the
// available pool the moment its booking is approved.
func MarkToolInUse(tx *gorm.DB, toolID int64) error {
	return tx.Model(&toolModel{}).Where("id = ?", toolID).
		Updates(map[string]any{"status": string(domain.ToolInUse), "updated_at": time.Now()}).Error
}

// Create inserts a pending booking. Tool existence, tool availability and
// the conflict check all happen inside one transaction with the insert,
// so two concurrent submits cannot both pass the check.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tool toolModel
		if err := tx.First(&tool, b.ToolID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrToolNotFound
			}
			return err
		}
		if domain.ToolStatus(tool.Status) != domain.ToolAvailable {
			return ErrToolUnavailable
		}

		conflict, err := hasConflictTx(tx, b.ToolID, b.StartDate, b.EndDate, 0)
		if err != nil {
			return err
		}
		if conflict {
			return ErrConflict
		}

		m := toBookingModel(b)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		*b = *toDomainBooking(m)
		return nil
	})
}

// BookingPatch carries a partial update; nil fields stay unchanged.
// Status changes are validated against the state machine, interval/tool
// changes re-run the conflict check excluding the booking itself.
type BookingPatch struct {
	ToolID     *int64
	StartDate  *time.Time
	EndDate    *time.Time
	Duration   *int
	Purpose    *string
	Status     *domain.BookingStatus
	Cost       *float64
	FuelUsed   *float64
	ApprovedBy *int64
	ApprovedAt *time.Time
}

func (p BookingPatch) touchesInterval() bool {
	return p.ToolID != nil || p.StartDate != nil || p.EndDate != nil
}

// Apply executes a patch as one atomic unit: load, transition check,
// conflict re-check, write, optional approval side effect. Either all of
// it commits or none of it does.
func (r *BookingRepository) Apply(ctx context.Context, id int64, p BookingPatch, onApprove ApprovalSideEffect) (*domain.Booking, error) {
	var out *domain.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m bookingModel
		if err := tx.First(&m, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		cur := domain.BookingStatus(m.Status)
		approving := false
		if p.Status != nil && *p.Status != cur {
			if !cur.CanTransitionTo(*p.Status) {
				return ErrInvalidTransition
			}
			approving = *p.Status == domain.BookingApproved
		}

		if p.touchesInterval() {
			if !cur.Editable() {
				return ErrNotEditable
			}
			toolID := m.ToolID
			start := m.StartDate
			end := m.EndDate
			if p.ToolID != nil {
				toolID = *p.ToolID
			}
			if p.StartDate != nil {
				start = *p.StartDate
			}
			if p.EndDate != nil {
				end = *p.EndDate
			}
			conflict, err := hasConflictTx(tx, toolID, start, end, id)
			if err != nil {
				return err
			}
			if conflict {
				return ErrConflict
			}
			m.ToolID = toolID
			m.StartDate = start
			m.EndDate = end
		}

		if p.Duration != nil {
			m.Duration = *p.Duration
		}
		if p.Purpose != nil {
			m.Purpose = *p.Purpose
		}
		if p.Status != nil {
			m.Status = string(*p.Status)
		}
		if p.Cost != nil {
			m.Cost = p.Cost
		}
		if p.FuelUsed != nil {
			m.FuelUsed = p.FuelUsed
		}
		if p.ApprovedBy != nil {
			m.ApprovedBy = p.ApprovedBy
		}
		if p.ApprovedAt != nil {
			m.ApprovedAt = p.ApprovedAt
		}
		m.UpdatedAt = time.Now()

		if err := tx.Save(&m).Error; err != nil {
			return err
		}

		if approving && onApprove != nil {
			if err := onApprove(tx, m.ToolID); err != nil {
				return err
			}
		}

		out = toDomainBooking(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete is the administrative hard delete: unconditional, any state.
func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&bookingModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).Preload("User").Preload("Tool").First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) listModels(q *gorm.DB) ([]domain.Booking, error) {
	var ms []bookingModel
	if err := q.Preload("User").Preload("Tool").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return r.listModels(r.db.WithContext(ctx).Order("created_at DESC"))
}

func (r *BookingRepository) ListPending(ctx context.Context) ([]domain.Booking, error) {
	return r.listModels(
		r.db.WithContext(ctx).
			Where("status = ?", string(domain.BookingPending)).
			Order("start_date ASC"),
	)
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return r.listModels(
		r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("start_date DESC"),
	)
}

// CalendarRange returns pending/approved bookings intersecting the query
// window. The calendar uses inclusive bounds so that bookings touching
// the window edge stay visible; the conflict invariant itself is strict.
func (r *BookingRepository) CalendarRange(ctx context.Context, start, end time.Time) ([]domain.Booking, error) {
	return r.listModels(
		r.db.WithContext(ctx).
			Where("status IN ?", blockingStatuses).
			Where("start_date <= ? AND end_date >= ?", end, start).
			Order("start_date ASC"),
	)
}

// HistoryFilter narrows the reporting view; zero values mean "no filter".
type HistoryFilter struct {
	ToolID int64
	UserID int64
	From   time.Time
	To     time.Time
}

// History returns approved/completed bookings for reporting, newest first.
func (r *BookingRepository) History(ctx context.Context, f HistoryFilter) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).
		Where("status IN ?", []string{string(domain.BookingApproved), string(domain.BookingCompleted)})
	if f.ToolID > 0 {
		q = q.Where("tool_id = ?", f.ToolID)
	}
	if f.UserID > 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if !f.From.IsZero() {
		q = q.Where("start_date >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("start_date <= ?", f.To)
	}
	return r.listModels(q.Order("start_date DESC"))
}

func (r *BookingRepository) CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("status = ?", string(status)).Count(&cnt)
	return cnt, tx.Error
}

// CountActiveAt counts approved bookings whose interval contains the
// given instant.
func (r *BookingRepository) CountActiveAt(ctx context.Context, at time.Time) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("status = ?", string(domain.BookingApproved)).
		Where("start_date <= ? AND end_date >= ?", at, at).
		Count(&cnt)
	return cnt, tx.Error
}

// SumApprovedDuration totals the duration hours of approved bookings whose
// start falls within [from, to]. Each booking is counted once, against the
// month its start belongs to.
func (r *BookingRepository) SumApprovedDuration(ctx context.Context, from, to time.Time) (int64, error) {
	var sum *int64
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Select("SUM(duration)").
		Where("status = ?", string(domain.BookingApproved)).
		Where("start_date >= ? AND start_date <= ?", from, to).
		Scan(&sum)
	if tx.Error != nil {
		return 0, tx.Error
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}
