package cmd

const DESCRIPTION = `
cookiestore keeps name/value cookies in a local jar, the way a browser
keeps document.cookie. Jars can be a SQLite database, a Netscape
cookies.txt file or memory, and values can be sealed with a key kept
in the OS keyring.
`

const (
	SetDescription = `The set command writes a cookie under path "/". Without
--hours the cookie lives until the session ends; with it the
cookie expires that many hours from now.

Example:
        cookiestore set theme dark
        cookiestore set --hours 24 sid 4f2a

`
	GetDescription = `The get command prints the value of a cookie. It exits
with status 1 when the cookie is not set.

Example:
        cookiestore get theme

`
	ListDescription = `The list command prints the jar the way a browser
reports document.cookie, "a=1; b=2".

Example:
        cookiestore list

`
	ImportDescription = `The import command copies the cookies of a domain from
a Firefox or Chrome cookie database, or a Netscape cookies.txt
file, into the jar. Expiry times are kept.

Without a PATH the cookie store of an installed browser is used:
the one named by --browser, or the first one found among Firefox,
LibreWolf, Chrome, Chromium, Edge and Brave.

Example:
        cookiestore import --domain example.com ~/.mozilla/firefox/abc.default/cookies.sqlite
        cookiestore import --domain example.com --browser chrome

`
	ExportDescription = `The export command writes the live cookies of the jar to
a Netscape cookies.txt file usable by curl and wget.

Example:
        cookiestore export cookies.txt

`
	EndSessionDescription = `The end-session command removes every cookie written
without an expiry, like a browser does when it is closed.

Example:
        cookiestore end-session

`
)
