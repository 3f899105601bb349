// Package main provides the tokenvision command. The classify subcommand runs a
// trained hashtron model over images and prints ranked labels. The visualize
// subcommand renders every source file of a directory as a 224x224 token image.
//
//	tokenvision classify --model model.json.lzw --labels labels.txt photo.png
//	tokenvision visualize --out images ./src
package main
