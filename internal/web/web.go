// Package web embeds the view templates and the SPA shell.
package web

import (
	"embed"
	"errors"
	"io/fs"
)

//go:embed views/*.html
var views embed.FS

//go:embed static
var static embed.FS

// Views returns the template tree, rooted so that "login.html" resolves.
func Views() fs.FS {
	sub, err := fs.Sub(views, "views")
	if err != nil {
		panic(err)
	}
	return sub
}

// Shell returns index.html and the static assets.
func Shell() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Overlay opens names from the first layer that has them.
func Overlay(layers ...fs.FS) fs.FS {
	return overlay(layers)
}

type overlay []fs.FS

func (o overlay) Open(name string) (fs.File, error) {
	for _, layer := range o {
		f, err := layer.Open(name)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}
