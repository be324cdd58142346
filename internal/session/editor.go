package session

// StartEditor launches the first available editor from EditorCandidates
// with configPath as its init file, optionally opening file. Shutdown quits
// without saving.
func StartEditor(configPath, file string, opts ...Option) (*Session, error) {
	path, err := LookupExecutable(EditorCandidates...)
	if err != nil {
		return nil, err
	}
	args := []string{EditorConfigFlag, configPath}
	if file != "" {
		args = append(args, file)
	}

	o := defaultOptions()
	o.args = args
	o.quitKeys = EditorQuitKeys
	for _, opt := range opts {
		opt(&o)
	}
	return launch(path, o)
}
