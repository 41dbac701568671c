// Package cookiestore writes and reads named cookies through a host cookie
// jar that follows the document.cookie contract: the getter returns every
// visible cookie as one "a=1; b=2" string and the setter accepts a single
// serialized "name=value[; attr=value]*" cookie.
//
// Cookies written by a Store always carry "path=/" and, unless the Expiry is
// NoExpiry, an "expires=" attribute in HTTP-date form:
//
//	jar := cookiestore.NewMemoryJar(nil)
//	store := cookiestore.New(jar)
//	if err := store.Write("theme", "dark", cookiestore.Hours(24)); err != nil {
//		return err
//	}
//	theme, ok, err := store.Read("theme")
//
// Values are stored verbatim. Callers that need to store ';' or whitespace
// must encode the value first, for example with EscapeValue.
package cookiestore
