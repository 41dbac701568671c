package browser

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/ezdeploy/cookiestore/pkg/logger"
)

// Import reads the live cookies for domain from the cookie store at path,
// whatever its format.
func Import(path, domain string, log logger.Logger) ([]Cookie, *Source, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("browser: %s detected as %s", path, format)

	var cookies []Cookie
	switch format {
	case FormatFirefox:
		cookies, err = readCopy(path, domain, ReadFirefox)
	case FormatChrome:
		cookies, err = readCopy(path, domain, ReadChrome)
	case FormatNetscape:
		cookies, err = ReadNetscape(afero.NewOsFs(), path, domain, log)
	default:
		err = fmt.Errorf("unsupported cookie store format: %s", path)
	}
	if err != nil {
		return nil, nil, err
	}
	return cookies, &Source{Path: path, Format: format}, nil
}

func readCopy(path, domain string, read func(string, string) ([]Cookie, error)) ([]Cookie, error) {
	copied, cleanup, err := SafeCopy(path)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	return read(copied, domain)
}
