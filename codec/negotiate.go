package codec

// ResolveInput computes the effective media type for a named input, per
// §3.3's three-layer precedence: declared dataformat defaults < declared
// per-input media type < the document's own media type (as supplied by
// the caller alongside its bytes). declared, if present, wins the
// (type, subtype) choice when the document doesn't specify one of its
// own; document always wins on conflicting parameters.
func ResolveInput(header Header, name string, document MediaType) MediaType {
	declared, ok := header.DefaultInputMediaType(name)
	index := document.Index()
	if !hasType(document) && ok {
		index = declared.Index()
	}
	merged := header.DataFormatDefaults(index)
	if ok && declared.Index() == index {
		merged = merged.MergeParams(declared)
	}
	if hasType(document) {
		merged = merged.MergeParams(document)
	}
	merged.Type, merged.Subtype = splitIndex(index)
	return merged
}

// ResolveOutput computes the effective output media type: an explicit
// override (e.g. transform's outputMediaType argument) takes precedence
// over the header's declared `output` candidates, per §6.1 "outputMediaType
// overrides any output header entry when provided."
func ResolveOutput(header Header, override *MediaType) (MediaType, bool) {
	if override != nil {
		mt := *override
		merged := header.DataFormatDefaults(mt.Index()).MergeParams(mt)
		merged.Type, merged.Subtype = mt.Type, mt.Subtype
		return merged, true
	}
	declared, ok := header.DefaultOutputMediaType()
	if !ok {
		return MediaType{}, false
	}
	merged := header.DataFormatDefaults(declared.Index()).MergeParams(declared)
	merged.Type, merged.Subtype = declared.Type, declared.Subtype
	return merged, true
}

func hasType(mt MediaType) bool {
	return mt.Type != "" && mt.Subtype != ""
}

func splitIndex(index string) (string, string) {
	for i := 0; i < len(index); i++ {
		if index[i] == '/' {
			return index[:i], index[i+1:]
		}
	}
	return index, ""
}
