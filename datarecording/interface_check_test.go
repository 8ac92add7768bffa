package datarecording

// If this compiles, the interfaces are correctly implemented.

var _ DataRecorder = (*sqliteWriter)(nil)
var _ DataReader = (*sqliteReader)(nil)
