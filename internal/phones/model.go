package phones

// Phone holds a user's phone number split into dialing components.
type Phone struct {
	ID                 int64  `json:"phone_id"`
	CountryCode        string `json:"country_code"`
	MobileOperatorCode string `json:"mobile_operator_code"`
	PhoneNumber        string `json:"phone_number"`
}
