package service

import (
	"context"
	"time"

	"vendorhub/internal/model"

	"gorm.io/gorm"
)

// DTOs

type DashboardMetrics struct {
	TotalVendors     int64 `json:"total_vendors"`
	PendingApprovals int64 `json:"pending_approvals"`
	UnderReview      int64 `json:"under_review"`
	ApprovedVendors  int64 `json:"approved_vendors"`
	RejectedVendors  int64 `json:"rejected_vendors"`
	MSMEVendors      int64 `json:"msme_vendors"`
	PendingDocuments int64 `json:"pending_documents"`
}

type DistributionEntry struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

type VendorDistribution struct {
	ByStatus       []DistributionEntry `json:"by_status"`
	ByCountry      []DistributionEntry `json:"by_country"`
	BySupplierType []DistributionEntry `json:"by_supplier_type"`
	ByCategory     []DistributionEntry `json:"by_category"`
}

type TrendPoint struct {
	Month      string `json:"month"`
	Registered int64  `json:"registered"`
	Approved   int64  `json:"approved"`
}

type WorkflowStatusEntry struct {
	Level    string `json:"level"`
	Pending  int64  `json:"pending"`
	Approved int64  `json:"approved"`
	Rejected int64  `json:"rejected"`
}

type RecentActivity struct {
	ID         string `json:"id"`
	Action     string `json:"action"`
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name"`
	Username   string `json:"username"`
	CreatedAt  string `json:"created_at"`
}

// DashboardService aggregates reviewer-facing metrics over the vendor
// pipeline. Read-only; aggregate queries go straight to the database.
type DashboardService interface {
	Metrics(ctx context.Context) (*DashboardMetrics, error)
	VendorDistribution(ctx context.Context) (*VendorDistribution, error)
	OnboardingTrends(ctx context.Context, months int) ([]TrendPoint, error)
	ApprovalWorkflowStatus(ctx context.Context) ([]WorkflowStatusEntry, error)
	RecentActivities(ctx context.Context, limit int) ([]RecentActivity, error)
}

type dashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) DashboardService {
	return &dashboardService{db: db}
}

func (s *dashboardService) Metrics(ctx context.Context) (*DashboardMetrics, error) {
	metrics := &DashboardMetrics{}

	db := s.db.WithContext(ctx)
	if err := db.Model(&model.Vendor{}).Count(&metrics.TotalVendors).Error; err != nil {
		return nil, err
	}

	counts := []struct {
		status string
		dst    *int64
	}{
		{model.VendorStatusPending, &metrics.PendingApprovals},
		{model.VendorStatusUnderReview, &metrics.UnderReview},
		{model.VendorStatusApproved, &metrics.ApprovedVendors},
		{model.VendorStatusRejected, &metrics.RejectedVendors},
	}
	for _, c := range counts {
		if err := db.Model(&model.Vendor{}).Where("status = ?", c.status).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	if err := db.Model(&model.Vendor{}).Where("msme_status = ?", model.MSMEStatusMSME).Count(&metrics.MSMEVendors).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.VendorDocument{}).Where("status = ?", model.DocStatusPending).Count(&metrics.PendingDocuments).Error; err != nil {
		return nil, err
	}

	return metrics, nil
}

func (s *dashboardService) groupVendors(ctx context.Context, column string) ([]DistributionEntry, error) {
	var entries []DistributionEntry
	err := s.db.WithContext(ctx).Model(&model.Vendor{}).
		Select(column + " as key, COUNT(*) as count").
		Where(column + " <> ''").
		Group(column).
		Order("count DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *dashboardService) VendorDistribution(ctx context.Context) (*VendorDistribution, error) {
	dist := &VendorDistribution{}

	var err error
	if dist.ByStatus, err = s.groupVendors(ctx, "status"); err != nil {
		return nil, err
	}
	if dist.ByCountry, err = s.groupVendors(ctx, "country_origin"); err != nil {
		return nil, err
	}
	if dist.BySupplierType, err = s.groupVendors(ctx, "supplier_type"); err != nil {
		return nil, err
	}
	if dist.ByCategory, err = s.groupVendors(ctx, "supplier_category"); err != nil {
		return nil, err
	}
	return dist, nil
}

// OnboardingTrends returns monthly registration and approval counts for the
// last n months, oldest first. Months with no activity still appear.
func (s *dashboardService) OnboardingTrends(ctx context.Context, months int) ([]TrendPoint, error) {
	if months <= 0 {
		months = 6
	}

	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	type row struct {
		Month string
		Count int64
	}

	var registered []row
	err := s.db.WithContext(ctx).Model(&model.Vendor{}).
		Select("to_char(date_trunc('month', created_at), 'YYYY-MM') as month, COUNT(*) as count").
		Where("created_at >= ?", start).
		Group("month").
		Scan(&registered).Error
	if err != nil {
		return nil, err
	}

	var approved []row
	err = s.db.WithContext(ctx).Model(&model.Vendor{}).
		Select("to_char(date_trunc('month', approved_at), 'YYYY-MM') as month, COUNT(*) as count").
		Where("approved_at IS NOT NULL AND approved_at >= ?", start).
		Group("month").
		Scan(&approved).Error
	if err != nil {
		return nil, err
	}

	registeredByMonth := make(map[string]int64, len(registered))
	for _, r := range registered {
		registeredByMonth[r.Month] = r.Count
	}
	approvedByMonth := make(map[string]int64, len(approved))
	for _, r := range approved {
		approvedByMonth[r.Month] = r.Count
	}

	points := make([]TrendPoint, 0, months)
	for i := 0; i < months; i++ {
		month := start.AddDate(0, i, 0).Format("2006-01")
		points = append(points, TrendPoint{
			Month:      month,
			Registered: registeredByMonth[month],
			Approved:   approvedByMonth[month],
		})
	}
	return points, nil
}

func (s *dashboardService) ApprovalWorkflowStatus(ctx context.Context) ([]WorkflowStatusEntry, error) {
	type row struct {
		Level  string
		Status string
		Count  int64
	}

	var rows []row
	err := s.db.WithContext(ctx).Model(&model.VendorApproval{}).
		Select("level, status, COUNT(*) as count").
		Group("level, status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byLevel := map[string]*WorkflowStatusEntry{}
	for _, r := range rows {
		entry, ok := byLevel[r.Level]
		if !ok {
			entry = &WorkflowStatusEntry{Level: r.Level}
			byLevel[r.Level] = entry
		}
		switch r.Status {
		case model.ApprovalPending:
			entry.Pending = r.Count
		case model.ApprovalApproved:
			entry.Approved = r.Count
		case model.ApprovalRejected:
			entry.Rejected = r.Count
		}
	}

	levels := []string{model.ApprovalLevel1, model.ApprovalLevel2, model.ApprovalLevel3, model.ApprovalLevelFinal}
	result := make([]WorkflowStatusEntry, 0, len(levels))
	for _, level := range levels {
		if entry, ok := byLevel[level]; ok {
			result = append(result, *entry)
		} else {
			result = append(result, WorkflowStatusEntry{Level: level})
		}
	}
	return result, nil
}

func (s *dashboardService) RecentActivities(ctx context.Context, limit int) ([]RecentActivity, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	var logs []model.AuditLog
	err := s.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	activities := make([]RecentActivity, 0, len(logs))
	for _, l := range logs {
		username := "System"
		if l.User != nil {
			username = l.User.Username
		}
		activities = append(activities, RecentActivity{
			ID:         l.ID.String(),
			Action:     l.Action,
			EntityID:   l.EntityID,
			EntityName: l.EntityName,
			Username:   username,
			CreatedAt:  l.CreatedAt.Format(time.RFC3339),
		})
	}
	return activities, nil
}
