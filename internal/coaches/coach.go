package coaches

import (
	"errors"
	"time"
)

var ErrCoachEmailTaken = errors.New("coach email already registered")

type Coach struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}
