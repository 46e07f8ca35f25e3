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
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/gorilla/handlers"
	"github.com/maxsupermanhd/lac"
	"github.com/natefinch/lumberjack"
)

func customLogger(writer io.Writer, params handlers.LogFormatterParams) {
	r := params.Request
	log.Println("["+r.RemoteAddr+"]", r.Method, params.StatusCode, r.RequestURI, "["+r.Header.Get("user-agent")+"]")
}

// createLogger is nil when logs_path is empty.
func createLogger(c *lac.Conf) *lumberjack.Logger {
	path := c.GetDSString("", "logs_path")
	if path == "" {
		return nil
	}
	return &lumberjack.Logger{
		Filename: path,
		MaxSize:  10,
		Compress: true,
	}
}

// setupLogging points the standard logger at stdout and, when logs_path
// is set, a rotated log file. The returned slog logger writes to the
// same place and is handed to the pipeline.
func setupLogging(c *lac.Conf, verbose bool) (*slog.Logger, io.Closer) {
	var w io.Writer = os.Stdout
	var closer io.Closer = io.NopCloser(nil)
	if lj := createLogger(c); lj != nil {
		w = io.MultiWriter(lj, os.Stdout)
		closer = lj
	}
	log.SetOutput(w)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closer
}
