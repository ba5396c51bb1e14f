package cli

// ReadEntryText is exported for testing
var ReadEntryText = readEntryText

// RenderResult is exported for testing
var RenderResult = renderResult

// IndexConfig is exported for testing
var IndexConfig = getIndexConfig
