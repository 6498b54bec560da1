// SPDX-License-Identifier: MIT

package remapstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/katalvlaran/sphgrid/internal/provenance"
	"github.com/katalvlaran/sphgrid/sphere"
	"github.com/katalvlaran/sphgrid/xgrid"
)

const schema = `
CREATE TABLE IF NOT EXISTS meta (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tiles (
    role    TEXT NOT NULL,
    pos     INTEGER NOT NULL,
    id      INTEGER NOT NULL,
    nx      INTEGER NOT NULL,
    ny      INTEGER NOT NULL,
    ioff    INTEGER NOT NULL,
    joff    INTEGER NOT NULL,
    cyclic  INTEGER NOT NULL,
    masked  INTEGER NOT NULL,
    PRIMARY KEY (role, pos)
);

CREATE TABLE IF NOT EXISTS cells (
    role  TEXT NOT NULL,
    pos   INTEGER NOT NULL,
    k     INTEGER NOT NULL,
    area  REAL NOT NULL,
    clon  REAL NOT NULL,
    clat  REAL NOT NULL,
    mask  REAL NOT NULL,
    PRIMARY KEY (role, pos, k)
);

CREATE TABLE IF NOT EXISTS xgrid (
    src_tile INTEGER NOT NULL,
    src_i    INTEGER NOT NULL,
    src_j    INTEGER NOT NULL,
    tgt_tile INTEGER NOT NULL,
    tgt_i    INTEGER NOT NULL,
    tgt_j    INTEGER NOT NULL,
    area     REAL NOT NULL,
    dlon     REAL NOT NULL,
    dlat     REAL NOT NULL
);
`

const (
	roleSrc = "src"
	roleTgt = "tgt"

	keyOrder = "order"
	keyArc   = "arc"
)

// Save writes x and its provenance to a new SQLite file at path, replacing
// any existing file.
func Save(ctx context.Context, path string, x *xgrid.XGrid, attrs provenance.Attrs) error {
	if x == nil {
		return fmt.Errorf("remapstore: save %s: nil exchange grid", path)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remapstore: replace %s: %w", path, err)
	}
	db, err := openDB(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("remapstore: begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	meta := append(attrs.Pairs(),
		[2]string{keyOrder, strconv.Itoa(x.Order)},
		[2]string{keyArc, x.Arc.String()})
	for _, kv := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES (?, ?)`, kv[0], kv[1]); err != nil {
			return fmt.Errorf("remapstore: insert meta %s: %w", kv[0], err)
		}
	}
	if err := saveTiles(ctx, tx, roleSrc, x.Src); err != nil {
		return err
	}
	if err := saveTiles(ctx, tx, roleTgt, x.Tgt); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO xgrid (src_tile, src_i, src_j, tgt_tile, tgt_i, tgt_j, area, dlon, dlat)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("remapstore: prepare records: %w", err)
	}
	defer stmt.Close()
	for n, r := range x.Records {
		if _, err := stmt.ExecContext(ctx,
			r.SrcTile, r.SrcI, r.SrcJ, r.TgtTile, r.TgtI, r.TgtJ, r.Area, r.DLon, r.DLat); err != nil {
			return fmt.Errorf("remapstore: insert record %d: %w", n, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("remapstore: commit %s: %w", path, err)
	}

	return nil
}

func saveTiles(ctx context.Context, tx *sql.Tx, role string, tiles []xgrid.TileMeta) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO cells (role, pos, k, area, clon, clat, mask) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("remapstore: prepare %s cells: %w", role, err)
	}
	defer stmt.Close()

	for pos, m := range tiles {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tiles (role, pos, id, nx, ny, ioff, joff, cyclic, masked) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			role, pos, m.ID, m.NX, m.NY, m.IOff, m.JOff, boolInt(m.CyclicX), boolInt(m.Mask != nil)); err != nil {
			return fmt.Errorf("remapstore: insert %s tile %d: %w", role, m.ID, err)
		}
		for k := 0; k < m.Cells(); k++ {
			mask := 1.0
			if m.Mask != nil {
				mask = m.Mask[k]
			}
			if _, err := stmt.ExecContext(ctx, role, pos, k, m.Area[k], m.CLon[k], m.CLat[k], mask); err != nil {
				return fmt.Errorf("remapstore: insert %s tile %d cell %d: %w", role, m.ID, k, err)
			}
		}
	}

	return nil
}

// Load reads an exchange grid and its provenance from path.
func Load(ctx context.Context, path string) (*xgrid.XGrid, provenance.Attrs, error) {
	var attrs provenance.Attrs
	// sql.Open would silently create a missing file
	if _, err := os.Stat(path); err != nil {
		return nil, attrs, fmt.Errorf("remapstore: open %s: %w", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, attrs, fmt.Errorf("remapstore: open %s: %w", path, err)
	}
	defer db.Close()

	kv, err := loadMeta(ctx, db)
	if err != nil {
		return nil, attrs, fmt.Errorf("remapstore: read %s: %w", path, err)
	}
	attrs = provenance.FromPairs(kv)
	order, err := strconv.Atoi(kv[keyOrder])
	if err != nil {
		return nil, attrs, fmt.Errorf("remapstore: %s: order %q: %w", path, kv[keyOrder], ErrCorrupt)
	}
	arc, err := sphere.ParseArc(kv[keyArc])
	if err != nil {
		return nil, attrs, fmt.Errorf("remapstore: %s: %w: %w", path, ErrCorrupt, err)
	}

	src, err := loadTiles(ctx, db, roleSrc)
	if err != nil {
		return nil, attrs, err
	}
	tgt, err := loadTiles(ctx, db, roleTgt)
	if err != nil {
		return nil, attrs, err
	}
	recs, err := loadRecords(ctx, db)
	if err != nil {
		return nil, attrs, err
	}

	x, err := xgrid.Assemble(order, arc, recs, src, tgt)
	if err != nil {
		return nil, attrs, fmt.Errorf("remapstore: %s: %w: %w", path, ErrCorrupt, err)
	}

	return x, attrs, nil
}

func loadMeta(ctx context.Context, db *sql.DB) (map[string]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT key, value FROM meta`)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotRemapFile, err)
	}
	defer rows.Close()

	kv := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		kv[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if kv["grid_version"] == "" {
		return nil, ErrNotRemapFile
	}

	return kv, nil
}

func loadTiles(ctx context.Context, db *sql.DB, role string) ([]xgrid.TileMeta, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, nx, ny, ioff, joff, cyclic, masked FROM tiles WHERE role = ? ORDER BY pos`, role)
	if err != nil {
		return nil, fmt.Errorf("remapstore: read %s tiles: %w", role, err)
	}
	var tiles []xgrid.TileMeta
	for rows.Next() {
		var m xgrid.TileMeta
		var cyclic, hasMask int
		if err := rows.Scan(&m.ID, &m.NX, &m.NY, &m.IOff, &m.JOff, &cyclic, &hasMask); err != nil {
			rows.Close()
			return nil, fmt.Errorf("remapstore: scan %s tile: %w", role, err)
		}
		if m.NX <= 0 || m.NY <= 0 {
			rows.Close()
			return nil, fmt.Errorf("remapstore: %s tile %d size %dx%d: %w", role, m.ID, m.NX, m.NY, ErrCorrupt)
		}
		m.CyclicX = cyclic != 0
		n := m.Cells()
		m.Area, m.CLon, m.CLat = make([]float64, n), make([]float64, n), make([]float64, n)
		if hasMask != 0 {
			m.Mask = make([]float64, n)
		}
		tiles = append(tiles, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("remapstore: read %s tiles: %w", role, err)
	}

	for pos := range tiles {
		if err := loadCells(ctx, db, role, pos, &tiles[pos]); err != nil {
			return nil, err
		}
	}

	return tiles, nil
}

func loadCells(ctx context.Context, db *sql.DB, role string, pos int, m *xgrid.TileMeta) error {
	rows, err := db.QueryContext(ctx,
		`SELECT k, area, clon, clat, mask FROM cells WHERE role = ? AND pos = ? ORDER BY k`, role, pos)
	if err != nil {
		return fmt.Errorf("remapstore: read %s tile %d cells: %w", role, m.ID, err)
	}
	defer rows.Close()

	seen := 0
	for rows.Next() {
		var k int
		var area, clon, clat, mask float64
		if err := rows.Scan(&k, &area, &clon, &clat, &mask); err != nil {
			return fmt.Errorf("remapstore: scan %s tile %d cell: %w", role, m.ID, err)
		}
		if k < 0 || k >= m.Cells() {
			return fmt.Errorf("remapstore: %s tile %d cell %d: %w", role, m.ID, k, ErrCorrupt)
		}
		m.Area[k], m.CLon[k], m.CLat[k] = area, clon, clat
		if m.Mask != nil {
			m.Mask[k] = mask
		}
		seen++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("remapstore: read %s tile %d cells: %w", role, m.ID, err)
	}
	if seen != m.Cells() {
		return fmt.Errorf("remapstore: %s tile %d has %d of %d cells: %w", role, m.ID, seen, m.Cells(), ErrCorrupt)
	}

	return nil
}

func loadRecords(ctx context.Context, db *sql.DB) ([]xgrid.Record, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT src_tile, src_i, src_j, tgt_tile, tgt_i, tgt_j, area, dlon, dlat FROM xgrid`)
	if err != nil {
		return nil, fmt.Errorf("remapstore: read records: %w", err)
	}
	defer rows.Close()

	var recs []xgrid.Record
	for rows.Next() {
		var r xgrid.Record
		if err := rows.Scan(&r.SrcTile, &r.SrcI, &r.SrcJ, &r.TgtTile, &r.TgtI, &r.TgtJ, &r.Area, &r.DLon, &r.DLat); err != nil {
			return nil, fmt.Errorf("remapstore: scan record: %w", err)
		}
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("remapstore: read records: %w", err)
	}

	return recs, nil
}

func openDB(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("remapstore: open database %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("remapstore: create schema: %w", err)
	}

	return db, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}

	return 0
}
