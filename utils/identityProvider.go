package utils

// IdentityAttributes is what the external identity provider returns after a
// successful verification. Persisted as the verification-data blob on the
// eKYC record.
type IdentityAttributes struct {
	Name      string            `json:"name"`
	Dob       string            `json:"dob"`
	Address   string            `json:"address"`
	Gender    string            `json:"gender"`
	Mobile    string            `json:"mobile,omitempty"`
	Documents map[string]string `json:"documents,omitempty"`
}

// FetchAadhaarIdentity and AuthenticateDigiLocker stand in for the real UIDAI
// and DigiLocker integrations. Both are vars so a real client can be swapped
// in without touching the controllers, and so tests can force failures.

var FetchAadhaarIdentity = func(aadhaarLastFour string) (*IdentityAttributes, error) {
	return &IdentityAttributes{
		Name:    "Rahul Kumar Singh",
		Dob:     "1995-06-15",
		Address: "123 MG Road, Connaught Place, New Delhi 110001",
		Gender:  "Male",
		Mobile:  "+91-98765*****",
	}, nil
}

var AuthenticateDigiLocker = func(userID uint) (*IdentityAttributes, error) {
	return &IdentityAttributes{
		Name:    "Priya Sharma",
		Dob:     "1992-08-20",
		Address: "456 Park Street, Bandra West, Mumbai 400050",
		Gender:  "Female",
		Documents: map[string]string{
			"aadhaar":        "Available",
			"pan":            "Available",
			"drivingLicense": "Available",
		},
	}, nil
}
