/*
Package carver is a content aware image shrinking library. It reduces the width
and the height of an image by repeatedly removing the seam of pixels with the lowest energy,
so the important parts of the image are preserved while the rest is carved away.

The package provides a command line interface, supporting various flags for different types of rescaling operations.
To check the supported commands type:

	$ carver --help

The engine can be used directly, one seam at a time:

	c, err := carver.NewCarver(img)
	if err != nil {
		return err
	}
	for c.Width() > 100 {
		if err := c.RemoveVerticalSeam(c.FindVerticalSeam()); err != nil {
			return err
		}
	}
	res := c.Picture()

In case you wish to integrate the resizer in a self constructed environment here is a simple example:

	package main

	import (
		"context"
		"fmt"

		"github.com/esimov/carver"
	)

	func main() {
		p := &carver.Processor{
			NewWidth:  400,
			NewHeight: 300,
		}

		if err := p.Process(context.Background(), in, out); err != nil {
			fmt.Printf("Error rescaling image: %s", err.Error())
		}
	}
*/
package carver
