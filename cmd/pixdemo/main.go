// Command pixdemo renders a demo scene with pixpipe and writes it as PNG,
// BMP or TIFF.
//
//	pixdemo --width 480 --height 320 --rotate 45 --output scene.bmp
package main

import (
	"github.com/alecthomas/kong"
)

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("pixdemo"),
		kong.Description("Render a pixpipe demo scene to an image file."),
		kong.UsageOnError(),
	)
	kctx.FatalIfErrorf(cli.Run())
}
