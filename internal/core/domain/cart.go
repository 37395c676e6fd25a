package domain

// CartItem is a class a user intends to pay for.
type CartItem struct {
	ID             string  `json:"_id"`
	ClassID        string  `json:"classId"`
	Email          string  `json:"email"`
	Name           string  `json:"name"`
	Image          string  `json:"image,omitempty"`
	Price          float64 `json:"price"`
	InstructorName string  `json:"instructorName,omitempty"`
}
