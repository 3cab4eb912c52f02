package service

import (
	"context"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"golang.org/x/sync/errgroup"
)

const (
	salesWindowDays  = 7
	recentOrderCount = 5
	topProductCount  = 5
)

type AdminService interface {
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
}

type adminService struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	now         func() time.Time
}

func NewAdminService(productRepo repository.ProductRepository, orderRepo repository.OrderRepository) AdminService {
	return &adminService{productRepo: productRepo, orderRepo: orderRepo, now: time.Now}
}

// Dashboard runs the independent aggregate queries concurrently. Sales are
// bucketed by UTC day and days without paid orders are reported as zero.
func (s *adminService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {

	stats := &models.DashboardStats{}

	now := s.now().UTC()
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(salesWindowDays - 1))

	var daily []models.DailySales

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.productRepo.CountProducts(gctx)
		stats.TotalProducts = count
		return err
	})

	g.Go(func() error {
		count, err := s.orderRepo.CountOrders(gctx)
		stats.TotalOrders = count
		return err
	})

	g.Go(func() error {
		revenue, err := s.orderRepo.TotalRevenue(gctx)
		stats.TotalRevenue = revenue
		return err
	})

	g.Go(func() error {
		sales, err := s.orderRepo.DailySales(gctx, since)
		daily = sales
		return err
	})

	g.Go(func() error {
		orders, _, err := s.orderRepo.ListOrders(gctx, 1, recentOrderCount)
		stats.RecentOrders = orders
		return err
	})

	g.Go(func() error {
		top, err := s.orderRepo.TopProducts(gctx, topProductCount)
		stats.TopProducts = top
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, errors.DatabaseError("Failed to load dashboard").WithError(err)
	}

	stats.SalesData = fillSalesWindow(daily, since, salesWindowDays)

	if stats.RecentOrders == nil {
		stats.RecentOrders = []*models.Order{}
	}
	if stats.TopProducts == nil {
		stats.TopProducts = []models.TopProduct{}
	}

	return stats, nil
}

func fillSalesWindow(daily []models.DailySales, since time.Time, days int) []models.DailySales {

	byDate := make(map[string]models.DailySales, len(daily))
	for _, d := range daily {
		byDate[d.Date] = d
	}

	filled := make([]models.DailySales, 0, days)

	for i := range days {
		date := since.AddDate(0, 0, i).Format(time.DateOnly)

		if d, ok := byDate[date]; ok {
			filled = append(filled, d)
			continue
		}

		filled = append(filled, models.DailySales{Date: date})
	}

	return filled
}
