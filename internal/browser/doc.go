// Package browser reads cookies out of browser cookie stores so they can be
// loaded into a cookiestore jar, and writes jars back out in the Netscape
// cookies.txt format understood by curl and most browser extensions.
//
// Supported inputs are Firefox cookies.sqlite (moz_cookies), Chrome Cookies
// (only rows stored unencrypted) and Netscape text files. SQLite stores are
// copied to a temporary directory before they are opened so a running
// browser holding a lock on them does not get in the way.
//
// Discover finds the store of an installed browser from the per-user
// profile directories (profiles.ini for the Firefox family, the Default
// profile for the Chromium family) on Linux, macOS and Windows.
//
// Cookie values must never be logged; only names, domains and file paths.
package browser
