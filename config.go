/*
	MineDraft, renderer for block game maps
	Copyright (C) 2022 Maxim Zhuchkov

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.

	Contact me via mail: q3.max.2011@yandex.ru or Discord: MaX#6717
*/

package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/maxsupermanhd/lac"
	"github.com/maxsupermanhd/minedraft/chunkStorage"
	"github.com/maxsupermanhd/minedraft/imageOutput"
	"github.com/maxsupermanhd/minedraft/render/dispatchers"
	"github.com/maxsupermanhd/minedraft/render/renderers"
)

// cfg holds the whole configuration tree. Components get their own
// subtree: "pipeline", "output" and "render".
var cfg = lac.NewConf()

func configPath() string {
	path := os.Getenv("MINEDRAFT_CONFIG")
	if path == "" {
		path = "config.json"
	}
	return path
}

// loadConfig reads .env and then the config file. Neither file has to
// exist, missing keys take their defaults where they are read.
func loadConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	path := configPath()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		cfg = lac.NewConf()
		return nil
	}
	c, err := lac.FromFileJSON(path)
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// saveConfig writes the tree back with every missing key set to its
// default.
func saveConfig() error {
	if _, err := configuredStorage(); err != nil {
		return err
	}
	cfg.GetDSString("", "logs_path")
	cfg.GetDSString("./worldcache", "cache_dir")
	cfg.GetDSString("", "web", "listen")
	dispatchers.NewPipelineConfig(cfg.SubTree("pipeline"), nil)
	if _, err := imageOutput.NewWriterFromConf(cfg.SubTree("output"), nil); err != nil {
		return err
	}
	if _, err := renderers.NewFactoryFromConf(cfg.SubTree("render"), nil); err != nil {
		return err
	}
	return cfg.ToFileIndentJSON(configPath(), 0664)
}

// configuredStorage is the "storage" key, a filesystem storage when
// absent.
func configuredStorage() (chunkStorage.Storage, error) {
	s := chunkStorage.Storage{Type: "filesystem"}
	err := cfg.GetToStruct(&s, "storage")
	if err != nil && !errors.Is(err, lac.ErrNoKey) {
		return s, err
	}
	if errors.Is(err, lac.ErrNoKey) {
		cfg.Set(map[string]any{"type": s.Type, "addr": "", "name": ""}, "storage")
	}
	return s, nil
}
