package domain

import "strings"

// Area is one of the gated route prefixes.
type Area string

const (
	AreaAccount   Area = "account"
	AreaAdmin     Area = "admin"
	AreaWholesale Area = "wholesale"
)

const (
	LoginPath        = "/auth/login"
	UnauthorizedPath = "/unauthorized"
	RedirectParam    = "redirect"
)

var areaPrefixes = []struct {
	prefix string
	area   Area
}{
	{"/admin", AreaAdmin},
	{"/wholesale", AreaWholesale},
	{"/account", AreaAccount},
}

// permissions is the hierarchical role table. Anything missing is denied.
var permissions = map[Role]map[Area]bool{
	RoleAdmin:      {AreaAdmin: true, AreaWholesale: true, AreaAccount: true},
	RoleWholesaler: {AreaWholesale: true, AreaAccount: true},
	RoleNormal:     {AreaAccount: true},
}

// ProtectedArea returns the area guarding path. Prefixes match on a segment
// boundary, so "/accounts" is not under "/account".
func ProtectedArea(path string) (Area, bool) {
	for _, p := range areaPrefixes {
		if path == p.prefix || strings.HasPrefix(path, p.prefix+"/") {
			return p.area, true
		}
	}
	return "", false
}

// CanAccess reports whether role r may enter area a.
func (r Role) CanAccess(a Area) bool {
	return permissions[r][a]
}

// HomePath is the highest-privilege landing page the role owns.
func (r Role) HomePath() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleWholesaler:
		return "/wholesale"
	default:
		return "/account"
	}
}

// LandingPath picks where to send a user after login: an explicit local
// redirect wins, otherwise the role's home.
func LandingPath(role Role, redirect string) string {
	if isLocalPath(redirect) {
		return redirect
	}
	return role.HomePath()
}

// isLocalPath accepts "/x" but not "//host" or "/\host", which browsers
// resolve as protocol-relative URLs.
func isLocalPath(p string) bool {
	if len(p) == 0 || p[0] != '/' {
		return false
	}
	if len(p) > 1 && (p[1] == '/' || p[1] == '\\') {
		return false
	}
	return !strings.ContainsAny(p, "\r\n")
}
