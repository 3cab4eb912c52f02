package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type DailySales struct {
	Date    string  `json:"date" bson:"_id"`
	Revenue float64 `json:"revenue" bson:"revenue"`
	Orders  int     `json:"orders" bson:"orders"`
}

type TopProduct struct {
	ProductID    primitive.ObjectID `json:"product_id" bson:"_id"`
	Name         string             `json:"name" bson:"name"`
	TotalSold    int                `json:"total_sold" bson:"total_sold"`
	TotalRevenue float64            `json:"total_revenue" bson:"total_revenue"`
}

type DashboardStats struct {
	TotalProducts int64        `json:"total_products"`
	TotalOrders   int64        `json:"total_orders"`
	TotalRevenue  float64      `json:"total_revenue"`
	SalesData     []DailySales `json:"sales_data"`
	RecentOrders  []*Order     `json:"recent_orders"`
	TopProducts   []TopProduct `json:"top_products"`
}
