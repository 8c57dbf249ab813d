package webserver

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/r2dtools/sitediscovery/internal/dto"
	"github.com/r2dtools/sitediscovery/internal/logger"
)

const (
	locationMarker  = "location /"
	maxPort         = 65535
	maxLineSize     = 2 * 1024 * 1024
	initialLineSize = 64 * 1024
)

type VhostParser struct {
	logger         logger.Logger
	domainResolver DomainResolver
}

func CreateVhostParser(log logger.Logger, domainResolver DomainResolver) *VhostParser {
	return &VhostParser{logger: log, domainResolver: domainResolver}
}

// Parse extracts vhosts from one config file.
func (p *VhostParser) Parse(filePath string, dialect DialectConfig) ([]dto.VirtualHost, error) {
	file, err := os.Open(filePath)

	if err != nil {
		return nil, &FileError{Path: filePath, Err: err}
	}

	defer file.Close()

	p.logger.Debug("get virtual hosts from file '%s'", filePath)

	vhosts, err := p.ParseReader(file, dialect, filePath)

	if err != nil {
		return nil, &FileError{Path: filePath, Err: err}
	}

	return vhosts, nil
}

// ParseReader scans config text line by line. A section is closed by the next section start
// or by the end of input; only sections that resolved both a domain and a port and were not
// flagged as a whole-site redirect produce a vhost.
func (p *VhostParser) ParseReader(reader io.Reader, dialect DialectConfig, source string) ([]dto.VirtualHost, error) {
	splitter := &lineSplitter{maxSize: maxLineSize}
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, initialLineSize), maxLineSize)
	scanner.Split(splitter.split)

	state := sectionState{}
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()

		if splitter.takeSkipped() {
			p.logger.Warning("%s:%d: line is too long, treat it as empty", source, lineNumber)
		} else if !utf8.ValidString(line) {
			p.logger.Debug("%s:%d: line is not valid utf-8, treat it as empty", source, lineNumber)
			line = ""
		}

		if dialect.SectionStart.MatchString(line) {
			p.closeSection(&state)
			state.start()
		}

		if state.insideSection {
			p.processSectionLine(&state, dialect, line, source, lineNumber)
		}

		state.previousLine = line
		state.hasPreviousLine = true
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}

	p.closeSection(&state)

	return state.vhosts, nil
}

func (p *VhostParser) processSectionLine(state *sectionState, dialect DialectConfig, line, source string, lineNumber int) {
	if dialect.RedirectToUrl != nil && dialect.RedirectToUrl.MatchString(line) {
		if !state.hasPreviousLine || !strings.Contains(state.previousLine, locationMarker) {
			p.logger.Debug("%s:%d: section redirects to another url, skip it", source, lineNumber)
			state.abandon()

			return
		}
	}

	if state.port == nil {
		if rawPort, ok := dialect.portFromLine(line); ok {
			port, err := parsePort(rawPort)

			if err != nil {
				p.logger.Warning("%s:%d: %v", source, lineNumber, err)
			} else {
				state.port = &port
			}
		}
	}

	if state.domain == nil {
		if rawDomain, ok := dialect.domainFromLine(line); ok {
			if domain := firstAlias(rawDomain); domain != "" {
				state.domain = &domain
			}
		}
	}
}

func (p *VhostParser) closeSection(state *sectionState) {
	if state.redirectDetected || state.port == nil {
		return
	}

	domain := ""

	if state.domain != nil {
		domain = *state.domain
	} else if p.domainResolver != nil {
		if resolved, ok := p.domainResolver.ResolveDomain(); ok {
			domain = resolved
		}
	}

	if domain == "" {
		return
	}

	vhost := dto.VirtualHost{Domain: domain, Port: *state.port}
	p.logger.Debug("found vhost %s", vhost)
	state.vhosts = append(state.vhosts, vhost)
}

type sectionState struct {
	insideSection    bool
	redirectDetected bool
	port             *int
	domain           *string
	previousLine     string
	hasPreviousLine  bool
	vhosts           []dto.VirtualHost
}

func (s *sectionState) start() {
	s.port = nil
	s.domain = nil
	s.insideSection = true
	s.redirectDetected = false
}

func (s *sectionState) abandon() {
	s.port = nil
	s.domain = nil
	s.insideSection = false
	s.redirectDetected = true
}

func parsePort(rawPort string) (int, error) {
	port, err := strconv.Atoi(rawPort)

	if err != nil {
		return 0, fmt.Errorf("could not parse port '%s': %v", rawPort, err)
	}

	if port < 1 || port > maxPort {
		return 0, fmt.Errorf("port %d is out of range", port)
	}

	return port, nil
}

// firstAlias keeps the first name of a directive listing several aliases.
func firstAlias(rawDomain string) string {
	aliases := strings.Fields(rawDomain)

	if len(aliases) == 0 {
		return ""
	}

	return aliases[0]
}

// lineSplitter works like bufio.ScanLines but turns a line longer than maxSize
// into an empty token instead of failing the whole scan with bufio.ErrTooLong.
type lineSplitter struct {
	maxSize  int
	skipping bool
	skipped  bool
}

func (s *lineSplitter) split(data []byte, atEOF bool) (int, []byte, error) {
	if s.skipping {
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			s.skipping = false
			s.skipped = true

			return i + 1, []byte{}, nil
		}

		if atEOF {
			s.skipping = false
			s.skipped = true

			return len(data), []byte{}, nil
		}

		return len(data), nil, nil
	}

	advance, token, err := bufio.ScanLines(data, atEOF)

	if advance == 0 && token == nil && err == nil && len(data) >= s.maxSize {
		s.skipping = true

		return len(data), nil, nil
	}

	return advance, token, err
}

func (s *lineSplitter) takeSkipped() bool {
	skipped := s.skipped
	s.skipped = false

	return skipped
}
