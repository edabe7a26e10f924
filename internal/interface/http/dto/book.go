package dto

import "time"

// BookRequest is the body of POST /books and PUT /books/{id}.
// Binding only rejects an omitted price or stock; they are pointers so an
// omitted value is told apart from 0. Text fields, lengths, ranges and the
// genre are checked by the domain, which reports those failures together.
// The validate tags only mark fields as required in the API document.
type BookRequest struct {
	Title  string   `json:"title" validate:"required" example:"Dom Casmurro"`
	Author string   `json:"author" validate:"required" example:"Machado de Assis"`
	Genre  string   `json:"genre" validate:"required" example:"Ficcao"`
	Price  *float64 `json:"price" binding:"required" example:"39.90"`
	Stock  *int     `json:"stock" binding:"required" example:"10"`
}

// ListBooksQuery is the query string of GET /books.
type ListBooksQuery struct {
	Title    string   `form:"title" example:"casmurro"`
	Author   string   `form:"author" example:"machado"`
	Genre    string   `form:"genre" example:"ficção"`
	MinPrice *float64 `form:"minPrice" example:"10"`
	MaxPrice *float64 `form:"maxPrice" example:"50"`
	InStock  *bool    `form:"inStock" example:"true"`
	Page     int      `form:"page" example:"1"`
	PageSize int      `form:"pageSize" example:"20"`
	SortBy   string   `form:"sortBy" example:"price" enums:"title,author,price,stock,createdAt,updatedAt"`
	SortDir  string   `form:"sortDir" example:"asc" enums:"asc,desc"`
}

// BookResponse documents the book payload.
type BookResponse struct {
	ID         string    `json:"id" example:"3fa85f64-5717-4562-b3fc-2c963f66afa6"`
	Title      string    `json:"title" validate:"required" example:"Dom Casmurro"`
	Author     string    `json:"author" validate:"required" example:"Machado de Assis"`
	Genre      string    `json:"genre" example:"Ficcao"`
	Price      float64   `json:"price" example:"39.9"`
	PriceCents int64     `json:"priceCents" example:"3990"`
	Stock      int       `json:"stock" example:"10"`
	CreatedAt  time.Time `json:"createdAt" example:"2024-05-01T12:00:00Z"`
	UpdatedAt  time.Time `json:"updatedAt" example:"2024-05-01T12:00:00Z"`
}

// BookPage documents the listing payload.
type BookPage struct {
	List       []BookResponse `json:"list"`
	Total      int64          `json:"total" example:"42"`
	Page       int            `json:"page" example:"1"`
	PageSize   int            `json:"pageSize" example:"20"`
	TotalPages int            `json:"totalPages" example:"3"`
}
