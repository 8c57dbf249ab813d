package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/r2dtools/sitediscovery/config"
	"github.com/r2dtools/sitediscovery/internal/dto"
	"github.com/r2dtools/sitediscovery/internal/logger"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags(t *testing.T) {
	RootCmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		if sliceValue, ok := flag.Value.(pflag.SliceValue); ok {
			require.Nil(t, sliceValue.Replace(nil))
		} else {
			require.Nil(t, flag.Value.Set(flag.DefValue))
		}

		flag.Changed = false
	})
}

func writeVhostFile(t *testing.T, path, content string) {
	require.Nil(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.Nil(t, os.WriteFile(path, []byte(content), 0644))
}

func createNginxRoot(t *testing.T) string {
	root := t.TempDir()
	writeVhostFile(t, filepath.Join(root, "example.conf"), `
server {
    listen 80;
    server_name example.com www.example.com;
}
server {
    listen 443 ssl;
    server_name example.com;
}
server {
    listen 8080;
    server_name example.com;
}
server {
    listen 80;
    server_name www.example.org;
}
server {
    listen 80;
    server_name localhost;
}
`)
	writeVhostFile(t, filepath.Join(root, "other.conf"), `
server {
    listen 443;
    server_name example.com;
}
`)

	return root
}

func getTestConfig(nginxRoot string) *config.Config {
	return &config.Config{
		NginxRoot:           nginxRoot,
		ApacheRoot:          filepath.Join(nginxRoot, "missing-apache"),
		VhostFileExtensions: []string{".conf"},
		DomainIgnoreMasks:   []string{"^localhost$"},
	}
}

func TestDiscoverSites(t *testing.T) {
	sites, err := discoverSites(getTestConfig(createNginxRoot(t)), &logger.TestLogger{T: t})

	require.Nil(t, err)
	assert.ElementsMatch(t, []dto.Site{
		{Name: "example.com_http", URL: "http://example.com"},
		{Name: "example.com", URL: "https://example.com"},
	}, sites)
}

func TestDiscoverSitesWithCustomPortsAndWww(t *testing.T) {
	conf := getTestConfig(createNginxRoot(t))
	conf.IncludeCustomPorts = true
	conf.IncludeWwwDomains = true
	conf.DomainIgnoreMasks = nil

	sites, err := discoverSites(conf, &logger.TestLogger{T: t})

	require.Nil(t, err)
	assert.ElementsMatch(t, []dto.Site{
		{Name: "example.com_http", URL: "http://example.com"},
		{Name: "example.com", URL: "https://example.com"},
		{Name: "example.com:8080", URL: "http://example.com:8080"},
		{Name: "www.example.org_http", URL: "http://www.example.org"},
		{Name: "localhost_http", URL: "http://localhost"},
	}, sites)
}

func TestDiscoverSitesHaltsOnParseErrors(t *testing.T) {
	root := createNginxRoot(t)
	require.Nil(t, os.Symlink(filepath.Join(root, "missing.target"), filepath.Join(root, "broken.conf")))

	conf := getTestConfig(root)
	_, err := discoverSites(conf, &logger.TestLogger{T: t})
	assert.Nil(t, err)

	conf.HaltOnParseErrors = true
	_, err = discoverSites(conf, &logger.TestLogger{T: t})
	assert.NotNil(t, err)
}

func TestWriteSites(t *testing.T) {
	var out bytes.Buffer
	sites := []dto.Site{{Name: "meduttio.uk", URL: "https://meduttio.uk"}}

	require.Nil(t, writeSites(&out, sites, true))
	assert.Equal(t, "{\"data\":[{\"{#NAME}\":\"meduttio.uk\",\"{#URL}\":\"https://meduttio.uk\"}]}\n", out.String())
}

func TestRootCommand(t *testing.T) {
	resetFlags(t)
	workDir := t.TempDir()
	nginxRoot := createNginxRoot(t)
	var out bytes.Buffer

	RootCmd.SetOut(&out)
	RootCmd.SetArgs([]string{
		"--work-dir", workDir,
		"--nginx-vhosts-path", nginxRoot,
		"--apache-vhosts-path", "",
		"--include-custom-ports",
		"--domain-ignore-masks", `^localhost$,^ex{1,2}ample\.org$`,
	})

	require.Nil(t, RootCmd.Execute())
	assert.Equal(
		t,
		`[{"{#NAME}":"example.com_http","{#URL}":"http://example.com"},{"{#NAME}":"example.com","{#URL}":"https://example.com"},{"{#NAME}":"example.com:8080","{#URL}":"http://example.com:8080"}]`+"\n",
		out.String(),
	)
	assert.FileExists(t, filepath.Join(workDir, "site-discovery.log"))
}
