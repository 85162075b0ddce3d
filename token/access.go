package token

// AccessControl answers whether a caller holds the administrator
// privilege. It is an explicit capability checked per call, not inherited
// behavior; the engine never caches its answers.
type AccessControl interface {
	IsAdmin(caller Address) bool
}

// AdminSet is a fixed set of administrator addresses.
type AdminSet struct {
	admins map[Address]struct{}
}

// NewAdminSet builds an AccessControl granting the admin privilege to the
// given addresses.
func NewAdminSet(addrs ...Address) *AdminSet {
	s := &AdminSet{admins: make(map[Address]struct{}, len(addrs))}
	for _, a := range addrs {
		s.admins[a] = struct{}{}
	}
	return s
}

// IsAdmin implements AccessControl.
func (s *AdminSet) IsAdmin(caller Address) bool {
	_, ok := s.admins[caller]
	return ok
}
