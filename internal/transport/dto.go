package transport

// CreateBurgerRequest carries the raw admin form values. Rating stays a
// string until validation so a non-numeric value is a validation message,
// not a bind failure.
type CreateBurgerRequest struct {
	Restaurant string `json:"restaurant" form:"restaurant"`
	Location   string `json:"location" form:"location"`
	BurgerName string `json:"burgerName" form:"burgerName"`
	BurgerType string `json:"burgerType" form:"burgerType"`
	Rating     string `json:"rating" form:"rating"`
	Date       string `json:"date" form:"date"`
	Instagram  string `json:"instagram" form:"instagram"`
	Maps       string `json:"maps" form:"maps"`
}

// BurgerPayload is the exact field set POST /burgers expects.
type BurgerPayload struct {
	Restaurant string  `json:"restaurant"`
	Location   string  `json:"location"`
	BurgerName string  `json:"burgerName"`
	BurgerType string  `json:"burgerType"`
	Rating     float64 `json:"rating"`
	Date       string  `json:"date"`
	Instagram  string  `json:"instagram"`
	Maps       string  `json:"maps"`
}
