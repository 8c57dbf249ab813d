package cli

import (
	"fmt"
	"io"

	"github.com/r2dtools/sitediscovery/config"
	"github.com/r2dtools/sitediscovery/internal/dto"
	"github.com/r2dtools/sitediscovery/internal/lld"
	"github.com/r2dtools/sitediscovery/internal/logger"
	"github.com/r2dtools/sitediscovery/internal/site"
	"github.com/r2dtools/sitediscovery/internal/webserver"
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:          "site-discovery",
	Short:        "Discover sites from nginx and apache virtual hosts in Zabbix LLD format",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.GetConfig(workDir, cmd.Flags())

		if err != nil {
			return err
		}

		log, err := logger.NewLogger(conf)

		if err != nil {
			return err
		}

		sites, err := discoverSites(conf, log)

		if err != nil {
			log.Error("site discovery failed: %v", err)

			return err
		}

		return writeSites(cmd.OutOrStdout(), sites, conf.UseDataProperty)
	},
}

var workDir string

func Create() *cobra.Command {
	RootCmd.Version = config.Version

	return RootCmd
}

func discoverSites(conf *config.Config, log logger.Logger) ([]dto.Site, error) {
	var domainResolver webserver.DomainResolver

	if conf.HostnameFallback {
		domainResolver = webserver.CreateHostnameResolver(log)
	}

	collector := webserver.CreateVhostCollector(webserver.CreateVhostParser(log, domainResolver), log)
	options := webserver.ScanOptions{
		Recursive:         conf.Recursive,
		FileExtensions:    conf.VhostFileExtensions,
		HaltOnParseErrors: conf.HaltOnParseErrors,
	}
	roots := map[string]string{
		webserver.WebServerNginxCode:  conf.NginxRoot,
		webserver.WebServerApacheCode: conf.ApacheRoot,
	}

	var webServers []webserver.WebServer

	for _, webServerCode := range webserver.GetSupportedWebServers() {
		root := roots[webServerCode]

		if root == "" {
			log.Debug("%s vhosts path is not specified, skip it", webServerCode)
			continue
		}

		webServer, err := webserver.GetWebServer(webServerCode, root, options, collector)

		if err != nil {
			return nil, err
		}

		webServers = append(webServers, webServer)
	}

	vhosts, err := webserver.DiscoverVhosts(webServers, log)

	if err != nil {
		return nil, err
	}

	vhosts = webserver.FilterByDomainMasks(vhosts, conf.DomainIgnoreMasks, log)
	vhosts = webserver.FilterVhosts(vhosts, conf.IncludeCustomPorts)
	sites := site.GetSitesFromVhosts(vhosts, conf.IncludeWwwDomains)
	log.Info("discovered %d sites", len(sites))

	return sites, nil
}

func writeSites(out io.Writer, sites []dto.Site, withDataProperty bool) error {
	data, err := lld.Marshal(sites, withDataProperty)

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, string(data))

	return err
}

func init() {
	RootCmd.AddCommand(InitConfigCmd)

	flags := RootCmd.PersistentFlags()
	flags.StringVar(&workDir, "work-dir", "", "directory holding config.yaml and the log file")
	flags.String(config.FlagName(config.NginxRootOpt), "", "path to nginx vhost configs (default /etc/nginx/conf.d)")
	flags.String(config.FlagName(config.ApacheRootOpt), "", "path to apache vhost configs (default /etc/httpd/conf.d)")
	flags.BoolP(config.FlagName(config.RecursiveOpt), "r", false, "scan vhost sub-directories")
	flags.StringSlice(config.FlagName(config.VhostFileExtensionsOpt), nil, "vhost file extensions (default .conf,.vhost)")
	flags.String(config.FlagName(config.DomainIgnoreMasksOpt), "", "comma separated regex masks of domains to exclude, commas inside {} or [] are kept (default ^localhost$)")
	flags.Bool(config.FlagName(config.IncludeCustomPortsOpt), false, "include vhosts on ports other than 80 and 443")
	flags.Bool(config.FlagName(config.IncludeWwwOpt), false, "include domains starting with www.")
	flags.BoolP(config.FlagName(config.HaltOnParseErrorsOpt), "f", false, "stop on the first vhost file that fails to parse")
	flags.Bool(config.FlagName(config.UseDataPropertyOpt), false, "wrap the output into {\"data\": [...]}")
	flags.Bool(config.FlagName(config.HostnameFallbackOpt), false, "use the server hostname for vhosts without a server name")
	flags.String(config.FlagName(config.LogLevelOpt), "", "log level: debug, info, warn, error (default info)")
	flags.Bool(config.FlagName(config.DebugOpt), false, "mirror log records to stderr")
}
