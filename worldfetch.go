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
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	getter "github.com/hashicorp/go-getter"
)

var ErrNoWorld = errors.New("no world given, use -n or -p")

// savesWorld is where the game keeps numbered worlds.
func savesWorld(n int) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".minecraft", "saves", "World"+strconv.Itoa(n)), nil
}

// resolveWorld turns -n and -p into a local directory. Paths that do
// not exist locally are handed to go-getter and downloaded into the
// cache directory once.
func resolveWorld(ctx context.Context, number int, path, cacheDir string) (string, error) {
	if number > 0 {
		return savesWorld(number)
	}
	if path == "" {
		return "", ErrNoWorld
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	dst := filepath.Join(cacheDir, strconv.FormatUint(xxhash.Sum64String(path), 36))
	if st, err := os.Stat(dst); err == nil && st.IsDir() {
		log.Printf("Using cached world %s for %s", dst, path)
		return dst, nil
	}
	log.Printf("Fetching world %s into %s", path, dst)
	if err := getter.Get(dst, path, getter.WithContext(ctx)); err != nil {
		os.RemoveAll(dst)
		return "", fmt.Errorf("fetching world %s: %w", path, err)
	}
	return dst, nil
}
