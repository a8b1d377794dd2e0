package model

type MonthCount struct {
	Month string `json:"mes" db:"mes"`
	Count int    `json:"cantidad" db:"cantidad"`
}

type VenuePopularity struct {
	VenueID      int    `json:"salon_id" db:"salon_id"`
	Title        string `json:"titulo" db:"titulo"`
	Reservations int    `json:"reservas" db:"reservas"`
}

type Stats struct {
	TotalReservations int               `json:"total_reservas"`
	PerMonth          []MonthCount      `json:"reservas_por_mes"`
	PopularVenues     []VenuePopularity `json:"salones_populares"`
	Revenue           float64           `json:"ingresos_totales"`
}
