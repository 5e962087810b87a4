package reconcile

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"timingcfg/core/document"
	"timingcfg/core/release"

	"go.uber.org/zap"
)

// Plan compares doc, loaded from path, against the release described by rel.
// The release is listed afresh on every call. The document is not modified.
func (e *Engine) Plan(ctx context.Context, path string, doc *document.Document, rel release.Config) (*Plan, error) {
	id, err := ParseIdentity(path)
	if err != nil {
		return nil, err
	}

	names, err := e.lister.List(ctx, rel.Location, id.Source, rel.Extension)
	if err != nil {
		return nil, err
	}
	listing := release.FilterByType(names, string(id.Type))
	sort.Strings(listing)

	plan := &Plan{
		Identity: id,
		Location: rel.Location,
		Listing:  listing,
	}

	plan.Checks = append(plan.Checks, checkToaType(doc, id))

	check, action := checkTimDirectory(doc, rel.Location)
	plan.Checks = append(plan.Checks, check)
	if action != nil {
		plan.Actions = append(plan.Actions, *action)
	}

	checks, action := checkToas(doc, listing)
	plan.Checks = append(plan.Checks, checks...)
	if action != nil {
		plan.Actions = append(plan.Actions, *action)
	}

	plan.Summary = summarize(plan)
	return plan, nil
}

// checkToaType compares the file name's type marker, uppercased, with the
// document's toa-type. The comparison is case-sensitive and never corrected.
func checkToaType(doc *document.Document, id Identity) Check {
	want := id.Type.Label()
	v, ok := doc.Get(FieldToaType)
	if !ok || v.IsNull() {
		return Check{Field: FieldToaType, Status: StatusMismatch, Detail: fmt.Sprintf("toa-type is not set, file name says %s", want)}
	}
	got, ok := v.Str()
	if !ok || got != want {
		return Check{Field: FieldToaType, Status: StatusMismatch, Detail: fmt.Sprintf("toa-type is %v, file name says %s", v.Interface(), want)}
	}
	return Check{Field: FieldToaType, Status: StatusOK, Detail: "toa-type matches file name"}
}

func checkTimDirectory(doc *document.Document, location string) (Check, *Action) {
	v, ok := doc.Get(FieldTimDirectory)
	if !ok || v.IsNull() {
		return Check{Field: FieldTimDirectory, Status: StatusMissing, Detail: "tim-directory is not set"}, nil
	}
	dir, ok := v.Str()
	if !ok {
		return Check{Field: FieldTimDirectory, Status: StatusMissing, Detail: "tim-directory is not a string"}, nil
	}
	if dir == "" {
		return Check{Field: FieldTimDirectory, Status: StatusMissing, Detail: "tim-directory is empty"}, nil
	}
	if dir == location {
		return Check{Field: FieldTimDirectory, Status: StatusOK, Detail: "tim-directory matches release"}, nil
	}

	reason := fmt.Sprintf("tim-directory %s differs from release %s", dir, location)
	return Check{Field: FieldTimDirectory, Status: StatusStale, Detail: reason},
		&Action{Field: FieldTimDirectory, Reason: reason, Value: document.Scalar(location)}
}

// checkToas compares the declared toas, sorted, with the listing. A present
// but empty list is reported and then compared like any other.
func checkToas(doc *document.Document, listing []string) ([]Check, *Action) {
	v, ok := doc.Get(FieldToas)
	if !ok || v.IsNull() {
		return []Check{{Field: FieldToas, Status: StatusMissing, Detail: "toas is not set"}}, nil
	}
	if v.Kind() != document.SequenceKind {
		return []Check{{Field: FieldToas, Status: StatusMissing, Detail: "toas is not a list"}}, nil
	}

	var checks []Check
	declared, ok := v.StringSlice()
	if ok && len(declared) == 0 {
		checks = append(checks, Check{Field: FieldToas, Status: StatusEmpty, Detail: "toas is empty"})
	}

	if ok {
		sorted := slices.Clone(declared)
		sort.Strings(sorted)
		if slices.Equal(sorted, listing) {
			return append(checks, Check{Field: FieldToas, Status: StatusOK, Detail: fmt.Sprintf("toas match release (%d files)", len(listing))}), nil
		}
	}

	reason := fmt.Sprintf("toas differ from release: declared %d, listed %d", len(v.Items()), len(listing))
	if !ok {
		reason = "toas contains non-string entries"
	}
	checks = append(checks, Check{Field: FieldToas, Status: StatusStale, Detail: reason})
	return checks, &Action{Field: FieldToas, Reason: reason, Value: document.Strings(listing)}
}

func summarize(plan *Plan) PlanSummary {
	s := PlanSummary{Listed: len(plan.Listing), Actions: len(plan.Actions)}
	for _, c := range plan.Checks {
		switch c.Status {
		case StatusMismatch, StatusStale:
			s.Warnings++
		case StatusMissing, StatusEmpty:
			s.Errors++
		}
	}
	return s
}

// logChecks reports each check at the level its status calls for.
func logChecks(logger *zap.Logger, plan *Plan) {
	for _, c := range plan.Checks {
		fields := []zap.Field{zap.String("field", c.Field), zap.String("status", string(c.Status))}
		switch c.Status {
		case StatusOK:
			logger.Info(c.Detail, fields...)
		case StatusStale, StatusMismatch:
			logger.Warn(c.Detail, fields...)
		default:
			logger.Error(c.Detail, fields...)
		}
	}
}
