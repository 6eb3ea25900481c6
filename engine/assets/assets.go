package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/math3d/engine/core"
)

// WorkbookExt is the extension of indexed workbook files.
const WorkbookExt = ".toml"

type WorkbookInfo struct {
	Path        string
	LastChanged time.Time
}

// WorkbookWatcher indexes the workbooks under a directory tree and reports
// the path of every workbook created or modified afterwards.
type WorkbookWatcher struct {
	workbooks map[string]WorkbookInfo

	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	started  bool
	changes  chan string
	errors   chan error
}

func NewWorkbookWatcher() (*WorkbookWatcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &WorkbookWatcher{
		workbooks: make(map[string]WorkbookInfo),
		fsnotify:  fsWatch,
		changes:   make(chan string, 16),
		errors:    make(chan error, 1),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}, nil
}

// Initialize indexes dir recursively and starts watching it.
func (ww *WorkbookWatcher) Initialize(dir string) error {
	if err := ww.addRecursive(dir); err != nil {
		return err
	}
	ww.mutex.Lock()
	ww.started = true
	ww.mutex.Unlock()
	go ww.start()
	return nil
}

// Changes delivers the path of each created or modified workbook. It is
// closed by Close.
func (ww *WorkbookWatcher) Changes() <-chan string {
	return ww.changes
}

// Errors delivers watcher errors. It is closed by Close.
func (ww *WorkbookWatcher) Errors() <-chan error {
	return ww.errors
}

// Workbooks returns the sorted paths of the indexed workbooks.
func (ww *WorkbookWatcher) Workbooks() []string {
	ww.mutex.RLock()
	defer ww.mutex.RUnlock()

	paths := make([]string, 0, len(ww.workbooks))
	for p := range ww.workbooks {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Close stops the watcher and closes the Changes and Errors channels.
func (ww *WorkbookWatcher) Close() error {
	ww.mutex.Lock()
	if ww.isClosed {
		ww.mutex.Unlock()
		return core.ErrWatcherClosed
	}
	ww.isClosed = true
	started := ww.started
	ww.mutex.Unlock()

	close(ww.done)
	if !started {
		ww.shutdown()
		return nil
	}
	<-ww.stopped
	return nil
}

// AddRecursive starts watching the named directory and all sub-directories.
func (ww *WorkbookWatcher) addRecursive(name string) error {
	ww.mutex.RLock()
	closed := ww.isClosed
	ww.mutex.RUnlock()
	if closed {
		return core.ErrWatcherClosed
	}
	return ww.watchRecursive(name)
}

func (ww *WorkbookWatcher) start() {
	defer close(ww.stopped)
	for {
		select {

		case e, ok := <-ww.fsnotify.Events:
			if !ok {
				ww.shutdown()
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := ww.watchRecursive(e.Name); err != nil {
						ww.report(err)
					}
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				if ww.index(e.Name) {
					ww.notify(e.Name)
				}
			}
			// Can't stat a removed path, so it is dropped from both the index
			// and the watch list without knowing whether it was a directory.
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				ww.removeWorkbook(e.Name)
				_ = ww.fsnotify.Remove(e.Name)
			}

		case err, ok := <-ww.fsnotify.Errors:
			if !ok {
				ww.shutdown()
				return
			}
			core.LogError(err.Error())
			ww.report(err)

		case <-ww.done:
			ww.shutdown()
			return
		}
	}
}

func (ww *WorkbookWatcher) shutdown() {
	ww.fsnotify.Close()
	close(ww.changes)
	close(ww.errors)
}

func (ww *WorkbookWatcher) notify(path string) {
	select {
	case ww.changes <- path:
	case <-ww.done:
	}
}

// report drops the error when nobody is draining Errors.
func (ww *WorkbookWatcher) report(err error) {
	select {
	case ww.errors <- err:
	default:
	}
}

// watchRecursive adds all directories under the given one to the watch list
// and indexes the workbooks found.
func (ww *WorkbookWatcher) watchRecursive(path string) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if err := ww.fsnotify.Add(walkPath); err != nil {
				return fmt.Errorf("watch %s: %w", walkPath, err)
			}
			return nil
		}
		ww.index(walkPath)
		return nil
	})
}

// index records path if it is a workbook and reports whether it was one.
func (ww *WorkbookWatcher) index(path string) bool {
	if filepath.Ext(path) != WorkbookExt {
		return false
	}
	ww.mutex.Lock()
	defer ww.mutex.Unlock()

	ww.workbooks[path] = WorkbookInfo{
		Path:        path,
		LastChanged: time.Now(),
	}
	core.LogDebug("indexed workbook %s", path)
	return true
}

// Remove the workbook from the index if it was deleted
func (ww *WorkbookWatcher) removeWorkbook(path string) {
	ww.mutex.Lock()
	defer ww.mutex.Unlock()

	delete(ww.workbooks, path)
}
