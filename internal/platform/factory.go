package platform

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/jot/pkg/adapters/fs"
	"github.com/aretw0/jot/pkg/adapters/memory"
	"github.com/aretw0/jot/pkg/codec"
	"github.com/aretw0/jot/pkg/core"
)

// New opens a note store and loads its collection.
//
//	store, err := jot.New("./notes", jot.WithFormat("yaml"))
//
// The URI argument is adapter-specific (the data directory for "fs",
// ignored for "memory"). The caller owns the store and must Close it.
func New(uri string, opts ...Option) (*core.Store, error) {
	o := apply(opts)

	c, err := resolveCodec(o)
	if err != nil {
		return nil, err
	}

	kv, err := open(uri, c, o)
	if err != nil {
		return nil, err
	}

	store, err := core.NewStore(core.Config{
		KV:          kv,
		Codec:       c,
		Key:         o.key,
		Logger:      o.logger,
		NewID:       o.newID,
		Now:         o.now,
		EventBuffer: o.eventBuffer,
	})
	if err != nil {
		return nil, err
	}

	if err := store.Load(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

// Init prepares the storage behind uri without opening a store:
// it resolves the data directory and creates it when needed.
// It returns the resolved directory.
func Init(uri string, opts ...Option) (string, error) {
	o := apply(opts)

	c, err := resolveCodec(o)
	if err != nil {
		return "", err
	}

	kv, err := open(uri, c, o)
	if err != nil {
		return "", err
	}
	if fsKV, ok := kv.(*fs.KV); ok {
		return fsKV.Dir(), nil
	}
	return uri, nil
}

func resolveCodec(o *options) (core.Codec, error) {
	if o.codec != nil {
		return o.codec, nil
	}
	return codec.ByName(o.format)
}

// open selects and initializes the KV adapter.
func open(uri string, c core.Codec, o *options) (core.KV, error) {
	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	kv := o.kv
	if kv == nil {
		switch o.adapter {
		case "", "fs":
			kv = openFS(uri, c, o, logger)
		case "memory":
			kv = memory.NewKV()
		default:
			return nil, fmt.Errorf("unsupported adapter: %s", o.adapter)
		}
	}

	if initializer, ok := kv.(core.Initializer); ok {
		if err := initializer.Initialize(context.Background()); err != nil {
			return nil, err
		}
	}
	return kv, nil
}

func openFS(uri string, c core.Codec, o *options, logger *slog.Logger) *fs.KV {
	readOnly, _ := o.config["read_only"].(bool)
	mustExist, _ := o.config["must_exist"].(bool)
	forceTemp, _ := o.config["temp_dir"].(bool)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	devSafety := true
	if v, ok := o.config["dev_safety"].(bool); ok {
		devSafety = v
	}

	var dir string
	if forceTemp || (devSafety && IsDevRun()) {
		dir = ResolveDataDir(uri, true)
		if dir != uri {
			logger.Warn("development run detected, using sandboxed data directory", "requested", uri, "dir", dir)
		}
	} else {
		dir = ResolveDataDir(uri, false)
	}

	return fs.NewKV(fs.Config{
		Dir:          dir,
		Ext:          codec.Ext(c),
		MustExist:    mustExist,
		ReadOnly:     readOnly,
		Logger:       logger,
		ErrorHandler: errorHandler,
	})
}
