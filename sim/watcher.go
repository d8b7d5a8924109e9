// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"context"
	"path/filepath"
	"time"

	"github.com/cpmech/gorheo/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is the default quiet period after the last change of a watched file
const DefaultDebounce = 200 * time.Millisecond

// Watcher reads a dictionary file again whenever it changes and hands the new contents to a handler
//  Note: files that cannot be read or parsed are reported and skipped
type Watcher struct {
	path     string             // absolute path of dictionary
	debounce time.Duration      // quiet period
	handler  func(inp.Dict)     // receives new dictionaries
	log      logrus.FieldLogger // logger
	watcher  *fsnotify.Watcher  // watches the directory holding the dictionary
}

// NewWatcher starts watching path. Run must be called to deliver dictionaries.
func NewWatcher(path string, debounce time.Duration, log logrus.FieldLogger, handler func(inp.Dict)) (o *Watcher, err error) {
	if handler == nil {
		return nil, chk.Err("watcher requires a handler")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, chk.Err("cannot resolve %q: %v", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, chk.Err("cannot create file watcher: %v", err)
	}

	// editors often replace files; thus the directory is watched
	err = w.Add(filepath.Dir(abs))
	if err != nil {
		w.Close()
		return nil, chk.Err("cannot watch %q: %v", abs, err)
	}
	o = &Watcher{path: abs, debounce: debounce, handler: handler, log: log.WithField("dict", abs), watcher: w}
	return
}

// Run delivers dictionaries until ctx is cancelled
func (o *Watcher) Run(ctx context.Context) error {
	defer o.watcher.Close()
	var timer *time.Timer
	var timerC <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-o.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != o.path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(o.debounce)
			} else {
				timer.Stop()
				timer.Reset(o.debounce)
			}
			timerC = timer.C

		case err, ok := <-o.watcher.Errors:
			if !ok {
				return nil
			}
			o.log.WithError(err).Warn("file watcher error")

		case <-timerC:
			timerC = nil
			o.load()
		}
	}
}

// load reads the dictionary and calls the handler
func (o *Watcher) load() {
	dict, err := inp.ReadDict(o.path)
	if err != nil {
		o.log.WithError(err).Warn("cannot reload dictionary; current parameters are kept")
		return
	}
	o.log.Info("dictionary changed")
	o.handler(dict)
}
