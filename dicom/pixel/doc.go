// Package pixel provides functionality for extracting and interpreting DICOM pixel data.
//
// This package handles native (uncompressed) pixel data in the Little and
// Big Endian transfer syntaxes, including the deflated variant. Compressed
// transfer syntaxes (JPEG, JPEG 2000, HTJ2K, RLE Lossless) are detected and
// rejected with a decoder-not-found error unless a decoder has been
// registered for them.
//
// # Basic Usage
//
// Extract pixel data from a DICOM dataset:
//
//	ds, err := dicom.ParseFile("ct_image.dcm")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pixelData, err := pixel.Extract(ds)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Access pixel values as typed array
//	pixels := pixelData.Array() // Returns []uint8, []int8, []uint16, or []int16
//
// Extract moves the bulk bytes out of the element tree: after a successful
// call the PixelData element retains an empty value.
//
// # Multi-Frame Support
//
// For multi-frame datasets, access individual frames:
//
//	frames := pixelData.Frames()
//	for i, frame := range frames {
//	    fmt.Printf("Frame %d: %dx%d\n", i, frame.Columns, frame.Rows)
//	    pixels := frame.Array()
//	    // Process frame pixels...
//	}
//
// # Decoder Registry
//
// The package uses a pluggable decoder registry. Custom decoders can be
// registered for proprietary or unsupported transfer syntaxes:
//
//	pixel.RegisterDecoder("1.2.3.4.5.6.7", myCustomDecoder)
package pixel
