package patient

// Patient maps to the patients table. Nullable columns are pointers; dates
// are kept in the store's text form ("2006-01-02" for admission_date).
type Patient struct {
	ID            int64   `db:"id" json:"id"`
	Name          string  `db:"name" json:"name"`
	Age           *int64  `db:"age" json:"age,omitempty"`
	Gender        *string `db:"gender" json:"gender,omitempty"`
	Contact       *string `db:"contact" json:"contact,omitempty"`
	Address       *string `db:"address" json:"address,omitempty"`
	Disease       *string `db:"disease" json:"disease,omitempty"`
	AdmissionDate string  `db:"admission_date" json:"admission_date"`
	CreatedAt     string  `db:"created_at" json:"created_at"`
}

// Summary is the row shape returned by searches and listings.
type Summary struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Age           *int64  `json:"age,omitempty"`
	Gender        *string `json:"gender,omitempty"`
	Contact       *string `json:"contact,omitempty"`
	AdmissionDate string  `json:"admission_date"`
}

// Update carries a partial update. A blank field means "keep the stored
// value"; there is no way to clear a field to empty through an update.
type Update struct {
	Name    string
	Age     string
	Gender  string
	Contact string
	Address string
	Disease string
}

// Search criteria accepted by Find.
const (
	ByName    = "name"
	ByContact = "contact"
	ByID      = "id"
)
