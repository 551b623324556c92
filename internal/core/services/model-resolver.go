package services

import (
	"time"

	"dpm-integrator/internal/core/domain"
)

// SelectVersion picks the newest version of the single model named name.
// Creation dates are compared as timestamps when all of them parse and as
// plain strings otherwise. On equal dates the later entry wins.
func SelectVersion(catalog []domain.DataModelInfo, name string) (*domain.DataModelVersionInfo, error) {
	var matches []domain.DataModelInfo
	for _, m := range catalog {
		if m.Name == name {
			matches = append(matches, m)
		}
	}

	switch {
	case len(matches) == 0:
		return nil, &domain.ResolutionError{Name: name, Err: domain.ErrNoModelFound}
	case len(matches) > 1:
		return nil, &domain.ResolutionError{Name: name, Err: domain.ErrAmbiguousModel}
	}

	model := matches[0]
	if len(model.DataModelVersions) == 0 {
		return nil, &domain.ResolutionError{Name: name, Err: domain.ErrModelHasNoVersion}
	}

	latest := latestVersion(model.DataModelVersions)
	if latest.DataModelID != model.ID {
		return nil, &domain.ResolutionError{Name: name, Err: domain.ErrModelVersionMismatch}
	}
	return &latest, nil
}

func latestVersion(versions []domain.DataModelVersionInfo) domain.DataModelVersionInfo {
	times := make([]time.Time, len(versions))
	allParsed := true
	for i, v := range versions {
		t, ok := v.CreatedAt()
		if !ok {
			allParsed = false
			break
		}
		times[i] = t
	}

	best := 0
	for i := 1; i < len(versions); i++ {
		var newer bool
		if allParsed {
			newer = !times[i].Before(times[best])
		} else {
			newer = versions[i].CreationDate >= versions[best].CreationDate
		}
		if newer {
			best = i
		}
	}
	return versions[best]
}
