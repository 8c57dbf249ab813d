package site

import (
	"testing"

	"github.com/r2dtools/sitediscovery/internal/dto"
	"github.com/stretchr/testify/assert"
)

func getSampleVhosts() []dto.VirtualHost {
	return []dto.VirtualHost{
		{Domain: "cronbox.ru", Port: dto.DefaultHttpsPort},
		{Domain: "www.google.com", Port: dto.DefaultHttpsPort},
		{Domain: "WWW.tinyops.ru", Port: dto.DefaultHttpPort},
		{Domain: "tinyops.ru", Port: dto.DefaultHttpsPort},
	}
}

func TestGetSitesFromVhostsWithoutWwwDomains(t *testing.T) {
	sites := GetSitesFromVhosts(getSampleVhosts(), false)

	assert.Equal(t, []dto.Site{
		{Name: "cronbox.ru", URL: "https://cronbox.ru"},
		{Name: "tinyops.ru", URL: "https://tinyops.ru"},
	}, sites)
}

func TestGetSitesFromVhostsWithWwwDomains(t *testing.T) {
	sites := GetSitesFromVhosts(getSampleVhosts(), true)

	assert.Len(t, sites, 4)
	assert.Contains(t, sites, dto.Site{Name: "www.google.com", URL: "https://www.google.com"})
	assert.Contains(t, sites, dto.Site{Name: "WWW.tinyops.ru_http", URL: "http://WWW.tinyops.ru"})
}

func TestGetSitesFromEmptyVhosts(t *testing.T) {
	sites := GetSitesFromVhosts(nil, false)

	assert.NotNil(t, sites)
	assert.Empty(t, sites)
}

func TestGetSite(t *testing.T) {
	assert.Equal(t, dto.Site{Name: "x.org", URL: "https://x.org"}, GetSite(dto.VirtualHost{Domain: "x.org", Port: 443}))
	assert.Equal(t, dto.Site{Name: "x.org_http", URL: "http://x.org"}, GetSite(dto.VirtualHost{Domain: "x.org", Port: 80}))
	assert.Equal(t, dto.Site{Name: "x.org:8081", URL: "http://x.org:8081"}, GetSite(dto.VirtualHost{Domain: "x.org", Port: 8081}))
}

func TestGetUrl(t *testing.T) {
	assert.Equal(t, "https://quarkoman.com", GetUrl("quarkoman.com", dto.DefaultHttpsPort))
	assert.Equal(t, "http://quarkoman.com", GetUrl("quarkoman.com", dto.DefaultHttpPort))
	assert.Equal(t, "http://quarkoman.com:5382", GetUrl("quarkoman.com", 5382))
}
