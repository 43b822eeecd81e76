package logrus

import (
	"github.com/sirupsen/logrus"

	assetcache "github.com/modfox/assetcache"
)

type Logger struct{ E *logrus.Entry }

var _ assetcache.Logger = Logger{}

func (l Logger) Debug(msg string, f assetcache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Debug(msg)
}
func (l Logger) Info(msg string, f assetcache.Fields) { l.E.WithFields(logrus.Fields(f)).Info(msg) }
func (l Logger) Warn(msg string, f assetcache.Fields) { l.E.WithFields(logrus.Fields(f)).Warn(msg) }
func (l Logger) Error(msg string, f assetcache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Error(msg)
}
