package providers

import (
	"context"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/class"
	"github.com/km-arc/go-beans/framework/container"
	"github.com/km-arc/go-beans/framework/discovery"
	"github.com/km-arc/go-beans/framework/reader"
)

// ── ClassProvider ─────────────────────────────────────────────────────────────

// ClassProvider adds construction recipes to the class table. Register it
// before any provider whose descriptors name those classes.
type ClassProvider struct {
	container.BaseProvider
	Classes []*class.Class
}

func (p *ClassProvider) Register(_ *beans.Registry, classes *class.Table) error {
	for _, c := range p.Classes {
		if err := classes.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ── DefinitionFileProvider ────────────────────────────────────────────────────

// DefinitionFileProvider loads YAML bean definitions.
//
// Files are read from disk; when FS is set, Files are glob patterns inside
// FS instead. component-scan sections use the table being registered into.
type DefinitionFileProvider struct {
	container.BaseProvider
	Files  []string
	FS     fs.FS
	Logger *zap.Logger
}

func (p *DefinitionFileProvider) Register(registry *beans.Registry, classes *class.Table) error {
	scanner := discovery.NewScanner(registry, classes, discovery.WithLogger(p.Logger))
	r := reader.New(registry, reader.WithScanner(scanner), reader.WithLogger(p.Logger))

	if p.FS != nil {
		_, err := r.LoadFS(p.FS, p.Files...)
		return err
	}
	for _, file := range p.Files {
		if _, err := r.LoadFile(file); err != nil {
			return err
		}
	}
	return nil
}

// ── ComponentScanProvider ─────────────────────────────────────────────────────

// ComponentScanProvider registers a descriptor for every Component class
// under Packages.
//
//	&providers.ComponentScanProvider{Packages: []string{"petstore.dao,petstore.service"}}
type ComponentScanProvider struct {
	container.BaseProvider
	Packages []string
	Logger   *zap.Logger
}

func (p *ComponentScanProvider) Register(registry *beans.Registry, classes *class.Table) error {
	found, err := discovery.NewScanner(registry, classes, discovery.WithLogger(p.Logger)).Scan(p.Packages...)
	if err != nil {
		return err
	}
	if p.Logger != nil {
		p.Logger.Info("component scan finished",
			zap.Strings("packages", discovery.SplitPackages(p.Packages...)),
			zap.Int("count", len(found)))
	}
	return nil
}

// ── EagerSingletonProvider ────────────────────────────────────────────────────

// EagerSingletonProvider builds every singleton at boot so wiring errors
// surface before the first request. Register it last.
type EagerSingletonProvider struct{}

func (p *EagerSingletonProvider) Register(*beans.Registry, *class.Table) error { return nil }

func (p *EagerSingletonProvider) Boot(c *container.Container) error {
	if err := c.PreInstantiateSingletons(context.Background()); err != nil {
		return fmt.Errorf("pre-instantiate singletons: %w", err)
	}
	return nil
}
