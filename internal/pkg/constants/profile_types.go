package constants

// Profile types a user declares at signup (what they intend to do on the marketplace).
const (
	Seller   = "seller"
	Buyer    = "buyer"
	Investor = "investor"
	Broker   = "broker"
)

// ValidProfileTypes is the set of allowed values for user_profiles.profile_type.
var ValidProfileTypes = []string{Seller, Buyer, Investor, Broker}

// IsValidProfileType returns true if t is one of the allowed values.
func IsValidProfileType(t string) bool {
	for _, v := range ValidProfileTypes {
		if v == t {
			return true
		}
	}
	return false
}
