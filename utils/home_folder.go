package utils

import (
	"flag"
	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"os"
	"path"
)

const DefaultHomeFolder = "~/.devsurvey"

var homeFolder string

func init() {
	flag.StringVar(&homeFolder, "home-folder", DefaultHomeFolder, "specify home folder")
}

func ExpandHomeFolder(folder string) (string, error) {
	appHomeFolder, err := homedir.Expand(folder)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(appHomeFolder, 0700); err != nil {
		return "", err
	}
	return appHomeFolder, nil
}

func GetHomeFolder() string {
	if appHomeFolder, err := ExpandHomeFolder(homeFolder); err != nil {
		log.WithError(err).Fatal("Error preparing home folder")
		return ""
	} else {
		return appHomeFolder
	}
}

func GetSubFolder(folderPath string) string {
	targetPath := path.Join(GetHomeFolder(), folderPath)
	if err := os.MkdirAll(targetPath, 0700); err != nil {
		log.WithError(err).Fatal("Could not create", targetPath)
	}
	return targetPath
}
