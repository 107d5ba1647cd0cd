package domain

// Dermatologist is one entry of the nearby-specialist lookup. All fields are
// display strings; order follows the lookup response.
type Dermatologist struct {
	Name       string `json:"name"`
	ClinicName string `json:"clinic_name"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Rating     string `json:"rating"`
	Distance   string `json:"distance"`
}
