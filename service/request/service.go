package request

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/elC0mpa/cost-advisor/model"
	"gopkg.in/yaml.v3"
)

func NewService(workdir string, fetcher ParameterFetcher, catalog Catalog) *parserService {
	return &parserService{workdir: workdir, fetcher: fetcher, catalog: catalog}
}

// Resolve picks the request source by priority and returns the enabled
// report map. Exactly one source is consulted per run.
func (s *parserService) Resolve(ctx context.Context, flags model.Flags) (model.ReportRequest, error) {
	switch {
	case flags.SSMParameter != "":
		return s.fromParameter(ctx, flags.SSMParameter)
	case flags.RequestFile != "":
		return s.fromFile(flags.RequestFile)
	case len(flags.Checks) > 0:
		return s.fromChecks(flags.Checks)
	}

	defaultFile := filepath.Join(s.workdir, DefaultRequestFile)
	if _, err := os.Stat(defaultFile); err == nil {
		return s.fromFile(defaultFile)
	}
	return nil, fmt.Errorf("%w: pass a request file, a check list or run the configuration menu", ErrNoRequestSource)
}

func (s *parserService) fromParameter(ctx context.Context, name string) (model.ReportRequest, error) {
	if s.fetcher == nil {
		return nil, fmt.Errorf("remote request %q requested but no parameter fetcher configured", name)
	}
	doc, err := s.fetcher.Fetch(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("fetching report request parameter %s: %w", name, err)
	}
	return parseDocument([]byte(doc))
}

func (s *parserService) fromFile(path string) (model.ReportRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report request file: %w", err)
	}
	return parseDocument(data)
}

// fromChecks turns an explicit check-name list into a request map. ALL
// expands to every known report of every registered provider.
func (s *parserService) fromChecks(checks []string) (model.ReportRequest, error) {
	known := s.catalog.ReportNames()

	request := model.ReportRequest{}
	for _, check := range checks {
		check = strings.TrimSpace(check)
		if strings.EqualFold(check, AllChecks) {
			for provider, reports := range known {
				for _, report := range reports {
					request[model.RequestKey(report, provider)] = true
				}
			}
			continue
		}

		provider, ok := providerOfCheck(known, check)
		if !ok {
			return nil, fmt.Errorf("unknown check %q", check)
		}
		request[model.RequestKey(check, provider)] = true
	}
	return request, nil
}

func providerOfCheck(known map[string][]string, check string) (string, bool) {
	for provider, reports := range known {
		for _, report := range reports {
			if report == check {
				return provider, true
			}
		}
	}
	return "", false
}

func parseDocument(data []byte) (model.ReportRequest, error) {
	var file requestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing report request document: %w", err)
	}
	if len(file.Reports) == 0 {
		return nil, fmt.Errorf("report request document has no reports section")
	}

	request := model.ReportRequest{}
	for key, enabled := range file.Reports {
		if _, _, err := model.SplitRequestKey(key); err != nil {
			return nil, err
		}
		request[key] = enabled
	}
	return request, nil
}
