// Package source discovers BPMN diagram files for validation.
//
// Two source modes are supported. The file source scans local paths,
// directories, and glob patterns for diagram files (.json, .yaml,
// .yml). The git source clones a repository, keeps it up to date with
// pulls, and lists diagrams from a directory inside it.
//
// A Watcher built on fsnotify can re-validate diagrams when their
// files change, debouncing rapid change bursts into a single run.
package source
