package fetcher

// Profile names a set of request headers resembling a kind of client
type Profile string

const (
	ProfileDefault Profile = "default"
	ProfileBrowser Profile = "browser"
	ProfileAuto    Profile = "auto"
)

const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/122.0.0.0 Safari/537.36"

// Expand lists the concrete profiles to try, in order. Anything that is not a
// concrete profile behaves like auto.
func (p Profile) Expand() []Profile {
	switch p {
	case ProfileDefault:
		return []Profile{ProfileDefault}
	case ProfileBrowser:
		return []Profile{ProfileBrowser}
	default:
		return []Profile{ProfileDefault, ProfileBrowser}
	}
}

func (p Profile) Headers() map[string]string {
	if p == ProfileBrowser {
		return map[string]string{
			"User-Agent":      browserUserAgent,
			"Accept":          "application/json,text/javascript,*/*;q=0.1",
			"Accept-Language": "es-ES,es;q=0.9,en;q=0.7",
			"Referer":         "https://itranvias.com/",
			"Origin":          "https://itranvias.com",
			"Connection":      "close",
		}
	}

	return map[string]string{
		"User-Agent": "coruna-bus/1.0",
		"Accept":     "application/json,*/*;q=0.1",
	}
}
