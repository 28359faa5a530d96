package models

// Entry represents a row of the entries table. Date and URL columns are
// free-form text supplied by the client. DeletedFlag is a soft-delete marker
// that is always written as 0 and never consulted.
type Entry struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Location      string `json:"location"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	Description   string `json:"description"`
	GoogleMapsURL string `json:"googleMapsUrl"`
	ImgURL        string `json:"imgUrl"`
	DeletedFlag   int    `json:"deletedFlag"`
	UserID        int64  `json:"userId"`
}
