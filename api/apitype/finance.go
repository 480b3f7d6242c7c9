package apitype

type CollectionPrice struct {
	CollectionName string
	Price          float64
}

type MonthlySpending struct {
	Month  string
	Amount float64
}

type FinancialSummary struct {
	TotalSpending   float64
	Collections     []CollectionPrice
	MonthlySpending []MonthlySpending
}
