// Package fileutil holds small file helpers shared by the task list writer
// and the audio generator.
package fileutil
