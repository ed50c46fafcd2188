package cola

// query.go implements membership lookup.
//
// Reference: coladb.c's cola_query: binary search each occupied level,
// level 0 upward, stopping at the first hit.

// Query reports whether key is present in the database.
func (db *DB) Query(key uint64) (bool, error) {
	if db.closed {
		return false, ErrClosed
	}
	res, err := db.query(key)
	if err != nil {
		return false, err
	}
	return res.Found, nil
}
