package folio

// composeMode selects the content source for a sheet.
type composeMode int

const (
	modeUnset composeMode = iota
	modeTemplate
	modeLeftRight
	modeSources
)

// composeOptions holds configuration for sheet composition.
type composeOptions struct {
	mode         composeMode
	templatePath string
	leftPath     string
	rightPath    string
	sourcePaths  []string
	scalePercent int
	pageWidth    int
	pageHeight   int
}

// clone creates a deep copy of composeOptions.
func (o composeOptions) clone() composeOptions {
	newOpts := o
	if o.sourcePaths != nil {
		newOpts.sourcePaths = make([]string, len(o.sourcePaths))
		copy(newOpts.sourcePaths, o.sourcePaths)
	}
	return newOpts
}

// recoverOptions holds configuration for sheet recovery.
type recoverOptions struct {
	// format is the output extension for extracted pages, without dot.
	format string
}

// defaultRecoverOptions returns the default recovery options.
func defaultRecoverOptions() recoverOptions {
	return recoverOptions{format: "png"}
}
