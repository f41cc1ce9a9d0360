package main

import (
	"github.com/shopintel/competitor-xray/internal/catalog"
	"github.com/shopintel/competitor-xray/internal/pipeline"
	"github.com/shopintel/competitor-xray/internal/store"
)

// pipelineEnv holds the initialized store, source, and pipeline shared by the
// run/batch/serve commands.
type pipelineEnv struct {
	Store    store.Store
	Source   pipeline.Source
	Pipeline *pipeline.Pipeline
}

// Close releases resources held by the pipeline environment.
func (pe *pipelineEnv) Close() {
	if pe.Store != nil {
		_ = pe.Store.Close()
	}
}

// initPipeline validates configuration, sets up the store and candidate
// source, and builds the pipeline. Callers should defer env.Close().
func initPipeline() (*pipelineEnv, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	st, err := initStore()
	if err != nil {
		return nil, err
	}

	src, err := initSource()
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	opts := []pipeline.Option{}
	if len(cfg.Keywords.Synonyms) > 0 {
		opts = append(opts, pipeline.WithSynonyms(cfg.Keywords.Synonyms))
	}
	if cfg.Pacing.Mode == "fixed" {
		opts = append(opts, pipeline.WithPacer(pipeline.DefaultFixedPacer()))
	}

	p := pipeline.New(cfg.Filters, cfg.Scoring, src, st, opts...)

	return &pipelineEnv{
		Store:    st,
		Source:   src,
		Pipeline: p,
	}, nil
}

func initStore() (store.Store, error) {
	if cfg.Store.Driver == "sqlite" {
		return store.NewSQLite()
	}
	return store.NewMemory(), nil
}

func initSource() (pipeline.Source, error) {
	if cfg.Catalog.Path != "" {
		return catalog.NewFileSource(cfg.Catalog.Path)
	}
	return catalog.NewSyntheticSource(), nil
}
