package handler

import "github.com/summercamp/camp-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Token ---

type tokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// --- Users ---

// registerRequest holds the fields of a registration payload the server
// understands. Everything else in the body is kept as profile data.
type registerRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
	Photo string `json:"photo" validate:"omitempty,url"`
}

type adminStatusResponse struct {
	Admin bool `json:"admin"`
}

type instructorStatusResponse struct {
	Instructor bool `json:"instructor"`
}

// --- Classes ---

type createClassRequest struct {
	Name           string  `json:"name"           validate:"required"`
	Image          string  `json:"image"          validate:"omitempty,url"`
	InstructorName string  `json:"instructorName"`
	AvailableSeats int     `json:"availableSeats" validate:"min=0"`
	Price          float64 `json:"price"          validate:"min=0"`
}

// --- Cart ---

type addCartItemRequest struct {
	ClassID        string  `json:"classId"        validate:"required"`
	Email          string  `json:"email"          validate:"required,email"`
	Name           string  `json:"name"`
	Image          string  `json:"image"`
	Price          float64 `json:"price"          validate:"min=0"`
	InstructorName string  `json:"instructorName"`
}

func (r addCartItemRequest) toDomain() domain.CartItem {
	return domain.CartItem{
		ClassID:        r.ClassID,
		Email:          r.Email,
		Name:           r.Name,
		Image:          r.Image,
		Price:          r.Price,
		InstructorName: r.InstructorName,
	}
}

// --- Payments ---

type paymentIntentRequest struct {
	Price float64 `json:"price"`
}

type paymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type recordPaymentRequest struct {
	Email         string   `json:"email"         validate:"omitempty,email"`
	TransactionID string   `json:"transactionId" validate:"required"`
	Price         float64  `json:"price"         validate:"gt=0"`
	Date          string   `json:"date"`
	CartItems     []string `json:"cartItems"`
	ClassItems    []string `json:"classItems"`
	ItemNames     []string `json:"itemNames"`
}
