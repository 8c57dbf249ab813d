package webserver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/r2dtools/sitediscovery/internal/dto"
	"github.com/r2dtools/sitediscovery/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCollector(t *testing.T) *VhostCollector {
	log := &logger.TestLogger{T: t}

	return CreateVhostCollector(CreateVhostParser(log, nil), log)
}

// a.conf and c.conf are valid, b.conf is a dangling symlink
func createRootWithBrokenFile(t *testing.T) string {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "a.conf"), "server {\n    listen 80;\n    server_name a.example.com;\n}\n")
	require.Nil(t, os.Symlink(filepath.Join(root, "missing.target"), filepath.Join(root, "b.conf")))
	writeTestFile(t, filepath.Join(root, "c.conf"), "server {\n    listen 443;\n    server_name c.example.com;\n}\n")

	return root
}

func TestCollectRootNotFound(t *testing.T) {
	collector := createCollector(t)
	_, err := collector.Collect(filepath.Join(t.TempDir(), "unknown"), GetNginxDialectConfig(false, testExtensions), false)

	assert.ErrorIs(t, err, ErrRootNotFound)
}

func TestCollectRootIsFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "file.conf")
	writeTestFile(t, root, "")

	_, err := createCollector(t).Collect(root, GetNginxDialectConfig(false, testExtensions), false)

	assert.ErrorIs(t, err, ErrRootNotFound)
}

func TestCollectSkipsBrokenFile(t *testing.T) {
	root := createRootWithBrokenFile(t)
	vhosts, err := createCollector(t).Collect(root, GetNginxDialectConfig(false, testExtensions), false)

	require.Nil(t, err)
	assert.Equal(t, []dto.VirtualHost{
		{Domain: "a.example.com", Port: 80},
		{Domain: "c.example.com", Port: 443},
	}, vhosts)
}

func TestCollectHaltsOnBrokenFile(t *testing.T) {
	root := createRootWithBrokenFile(t)
	vhosts, err := createCollector(t).Collect(root, GetNginxDialectConfig(false, testExtensions), true)

	var fileErr *FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, filepath.Join(root, "b.conf"), fileErr.Path)
	assert.Equal(t, []dto.VirtualHost{{Domain: "a.example.com", Port: 80}}, vhosts)
}

func TestCollectNginxTestdata(t *testing.T) {
	collector := createCollector(t)

	vhosts, err := collector.Collect("testdata/nginx-vhosts", GetNginxDialectConfig(false, testExtensions), false)
	require.Nil(t, err)
	assert.ElementsMatch(t, []dto.VirtualHost{
		{Domain: "whatever.ru", Port: 443},
		{Domain: "gallery.whatever.ru", Port: 23512},
	}, vhosts)

	vhosts, err = collector.Collect("testdata/nginx-vhosts", GetNginxDialectConfig(true, testExtensions), false)
	require.Nil(t, err)
	assert.ElementsMatch(t, []dto.VirtualHost{
		{Domain: "whatever.ru", Port: 443},
		{Domain: "gallery.whatever.ru", Port: 23512},
		{Domain: "extra.whatever.ru", Port: 8443},
		{Domain: "deep.whatever.ru", Port: 80},
	}, vhosts)
}

func TestCollectApacheTestdata(t *testing.T) {
	vhosts, err := createCollector(t).Collect("testdata/apache-vhosts", GetApacheDialectConfig(false, testExtensions), false)

	require.Nil(t, err)
	assert.ElementsMatch(t, []dto.VirtualHost{
		{Domain: "whatever.ru", Port: 443},
		{Domain: "whatever.ru", Port: 5380},
		{Domain: "collections.museum.ru", Port: 8081},
		{Domain: "demo.company.ru", Port: 1480},
	}, vhosts)
}
