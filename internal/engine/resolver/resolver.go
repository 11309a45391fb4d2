// Package resolver computes the transitive closure of required dependencies for one loader.
package resolver

import (
	"context"
	"fmt"

	"go.trai.ch/modlock/internal/core/domain"
	"go.trai.ch/modlock/internal/core/ports"
	"go.trai.ch/zerr"
)

// Request describes one resolution run for a single loader.
// Lock restricts candidate versions to the locked ones; its zero value accepts everything.
type Request struct {
	Loader      domain.Loader
	GameVersion string
	Projects    []domain.ManifestEntry
	Lock        domain.LockIndex
	Denylist    domain.Denylist
	ServerOnly  bool
	Strict      bool
}

// Resolver walks the registry breadth-first from the manifest roots.
type Resolver struct {
	registry ports.Registry
	logger   ports.Logger
	tracer   ports.Tracer
	metrics  ports.Metrics
}

// NewResolver creates a new Resolver.
func NewResolver(
	registry ports.Registry,
	logger ports.Logger,
	tracer ports.Tracer,
	metrics ports.Metrics,
) *Resolver {
	return &Resolver{
		registry: registry,
		logger:   logger,
		tracer:   tracer,
		metrics:  metrics,
	}
}

// closure is the state of one breadth-first walk.
type closure struct {
	queue    []domain.Resolved
	seen     map[domain.ResolvedKey]struct{}
	resolved []domain.Resolved
}

func (c *closure) add(r domain.Resolved) {
	key := r.Key()
	if _, ok := c.seen[key]; ok {
		return
	}
	c.seen[key] = struct{}{}
	c.resolved = append(c.resolved, r)
	c.queue = append(c.queue, r)
}

func (c *closure) next() (domain.Resolved, bool) {
	if len(c.queue) == 0 {
		return domain.Resolved{}, false
	}
	r := c.queue[0]
	c.queue = c.queue[1:]
	return r, true
}

// Resolve returns every (project, version) pair reachable from the request's
// projects over required dependencies, in discovery order.
// Registry errors abort the walk and are returned unchanged apart from metadata.
func (r *Resolver) Resolve(ctx context.Context, req Request) ([]domain.Resolved, error) {
	ctx, span := r.tracer.Start(ctx, "resolve "+req.Loader.String(),
		ports.WithAttribute("loader", req.Loader.String()),
		ports.WithAttribute("game_version", req.GameVersion),
	)
	defer span.End()

	names := make([]string, 0, len(req.Projects))
	for _, p := range req.Projects {
		names = append(names, p.Name)
	}
	r.tracer.EmitPlan(ctx, names)

	c := &closure{seen: make(map[domain.ResolvedKey]struct{})}

	for _, entry := range req.Projects {
		res, ok, err := r.resolveProject(ctx, &req, entry.Name, entry.Spec, true)
		if err != nil {
			span.RecordError(err)
			return nil, zerr.With(err, "loader", req.Loader.String())
		}
		if ok {
			c.add(res)
		}
	}

	for {
		current, ok := c.next()
		if !ok {
			break
		}

		for _, dep := range current.Version.RequiredDependencies() {
			if dep.ProjectID == "" {
				r.logger.Warn(fmt.Sprintf("%s %s declares a required dependency without a project id, skipping",
					current.Project.Slug, current.Version.VersionNumber))
				r.metrics.Warning(domain.WarningMissingDependencyID)
				continue
			}

			spec := domain.Wildcard()
			if dep.VersionID != "" {
				spec = domain.Pinned(dep.VersionID)
			}

			res, found, err := r.resolveProject(ctx, &req, dep.ProjectID, spec, false)
			if err != nil {
				span.RecordError(err)
				err = zerr.With(err, "required_by", current.Project.Slug)
				return nil, zerr.With(err, "loader", req.Loader.String())
			}
			if found {
				c.add(res)
			}
		}
	}

	span.SetAttribute("resolved", len(c.resolved))
	r.metrics.ResolvedVersions(req.Loader, len(c.resolved))
	r.logger.Debug(fmt.Sprintf("resolved %d %s versions", len(c.resolved), req.Loader))

	return c.resolved, nil
}

// resolveProject looks up one project and selects its version.
// It returns false without an error when the project is denylisted or has no
// compatible version outside strict mode.
func (r *Resolver) resolveProject(
	ctx context.Context, req *Request, name string, spec domain.ProjectSpec, root bool,
) (domain.Resolved, bool, error) {
	ctx, span := r.tracer.Start(ctx, "resolve "+name,
		ports.WithAttribute("project", name),
		ports.WithAttribute("spec", spec.String()),
	)
	defer span.End()

	if req.Denylist.Contains(name) {
		r.logger.Debug(fmt.Sprintf("skipping denylisted project %s", name))
		return domain.Resolved{}, false, nil
	}

	project, err := r.registry.Project(ctx, name)
	if err != nil {
		span.RecordError(err)
		return domain.Resolved{}, false, err
	}

	if req.Denylist.Denies(project) {
		r.logger.Debug(fmt.Sprintf("skipping denylisted project %s", project.Slug))
		return domain.Resolved{}, false, nil
	}

	if root && req.ServerOnly {
		if err := r.guard(project); err != nil {
			span.RecordError(err)
			return domain.Resolved{}, false, err
		}
	}

	versions, err := r.registry.Versions(ctx, project.ID, req.Loader, req.GameVersion)
	if err != nil {
		span.RecordError(err)
		return domain.Resolved{}, false, err
	}

	version, ok := domain.SelectVersion(versions, spec, req.Lock)
	if !ok {
		if req.Strict {
			err := zerr.With(domain.ErrNoCompatibleVersion, "project", project.Slug)
			err = zerr.With(err, "spec", spec.String())
			err = zerr.With(err, "game_version", req.GameVersion)
			span.RecordError(err)
			return domain.Resolved{}, false, err
		}
		r.logger.Warn(fmt.Sprintf("no compatible %s version of %s (%s) for Minecraft %s",
			req.Loader, project.Slug, spec, req.GameVersion))
		r.metrics.Warning(domain.WarningNoCompatibleVersion)
		return domain.Resolved{}, false, nil
	}

	span.SetAttribute("version", version.ID)
	r.logger.Debug(fmt.Sprintf("selected %s %s", project.Slug, version.VersionNumber))

	return domain.Resolved{Project: *project, Version: version}, true, nil
}

func (r *Resolver) guard(project *domain.RegistryProject) error {
	compat := domain.CheckCompatibility(project, true)
	switch compat.Verdict {
	case domain.VerdictFail:
		return zerr.With(domain.ErrServerUnsupported, "project", project.Slug)
	case domain.VerdictWarn:
		r.logger.Warn(fmt.Sprintf("%s: %s", project.Slug, compat.Reason))
		r.metrics.Warning(domain.WarningCompatibility)
	case domain.VerdictPass:
	}
	return nil
}
