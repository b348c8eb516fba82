package fluentsql

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// -----------------------------------------------------------------------------
// Reflection-Based SQL Scanner
// -----------------------------------------------------------------------------
// Satırları struct'lara tarar. Kolon → alan eşlemesi `db` tag'inden okunur
// (tag yoksa alan adının lowercase hali), embedded struct'lar özyineli
// çözülür. Tip analizi pahalı olduğundan eşleme tipi başına bir kez
// çıkarılır ve process ömrü boyunca cache'lenir.
// -----------------------------------------------------------------------------

type fieldMap map[string]string

type structScanner struct {
	mu    sync.RWMutex
	cache map[reflect.Type]fieldMap
}

var scanner = &structScanner{cache: make(map[reflect.Type]fieldMap)}

// fieldMapFor, bir struct tipini analiz eder ve cache'den döndürür.
func (s *structScanner) fieldMapFor(structType reflect.Type) fieldMap {
	// Read lock ile cache'i kontrol et
	s.mu.RLock()
	if mapping, ok := s.cache[structType]; ok {
		s.mu.RUnlock()
		return mapping
	}
	s.mu.RUnlock()

	// Cache miss - write lock al
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check pattern
	if mapping, ok := s.cache[structType]; ok {
		return mapping
	}

	mapping := s.buildFieldMap(structType)
	s.cache[structType] = mapping
	return mapping
}

// buildFieldMap, struct field'larını analiz eder. Çağıranın write lock
// tuttuğu varsayılır.
func (s *structScanner) buildFieldMap(structType reflect.Type) fieldMap {
	mapping := make(fieldMap)

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		// Embedded struct'ları özyineli işle
		if field.Anonymous {
			if field.Type.Kind() == reflect.Struct {
				for col, fName := range s.buildFieldMap(field.Type) {
					mapping[col] = field.Name + "." + fName
				}
			}
			continue
		}

		tag := field.Tag.Get("db")
		if tag == "-" {
			continue
		}
		if tag == "" {
			tag = strings.ToLower(field.Name)
		}

		mapping[tag] = field.Name
	}

	return mapping
}

// ScanStruct, tek bir *sql.Rows satırını bir struct'a tarar.
// rows.Next() çağıran tarafından yapılmış olmalıdır.
func ScanStruct(rows *sql.Rows, dest any) error {
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr || destValue.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("scanner: dest bir struct pointer olmalıdır, %T alındı", dest)
	}

	destElem := destValue.Elem()
	mapping := scanner.fieldMapFor(destElem.Type())

	cols, err := rows.Columns()
	if err != nil {
		return err
	}

	scanArgs := make([]any, len(cols))

	for i, colName := range cols {
		fieldName, ok := mapping[colName]
		if !ok {
			scanArgs[i] = new(sql.RawBytes)
			continue
		}

		fieldVal := destElem.FieldByName(fieldName)

		if !fieldVal.IsValid() {
			fieldVal = findEmbeddedField(destElem, fieldName)
		}

		if !fieldVal.IsValid() || !fieldVal.CanSet() {
			return fmt.Errorf("scanner: '%s' alanı bulunamadı veya ayarlanamıyor", fieldName)
		}

		scanArgs[i] = fieldVal.Addr().Interface()
	}

	return rows.Scan(scanArgs...)
}

// findEmbeddedField, 'A.B' gibi iç içe alan adlarını bulur.
func findEmbeddedField(v reflect.Value, name string) reflect.Value {
	parts := strings.Split(name, ".")
	current := v

	for _, part := range parts {
		if current.Kind() == reflect.Ptr {
			current = current.Elem()
		}
		if current.Kind() != reflect.Struct {
			return reflect.Value{}
		}
		current = current.FieldByName(part)
	}

	return current
}

// ScanSlice, tüm *sql.Rows sonuç kümesini bir struct slice'ına tarar.
func ScanSlice(rows *sql.Rows, dest any) error {
	sliceValue := reflect.ValueOf(dest)
	if sliceValue.Kind() != reflect.Ptr || sliceValue.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("scanner: dest bir slice pointer olmalıdır, %T alındı", dest)
	}

	sliceElem := sliceValue.Elem()
	structType := sliceElem.Type().Elem()

	for rows.Next() {
		newStructPtr := reflect.New(structType)

		if err := ScanStruct(rows, newStructPtr.Interface()); err != nil {
			return err
		}

		sliceElem.Set(reflect.Append(sliceElem, newStructPtr.Elem()))
	}

	return rows.Err()
}

// rowsToMaps, sql.Rows'ı []map[string]any biçimine dönüştürür. Driver'ın
// []byte döndürdüğü değerler string'e çevrilir.
func rowsToMaps(rows *sql.Rows) ([]map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	res := make([]map[string]any, 0)

	for rows.Next() {
		columns := make([]any, len(cols))
		columnPointers := make([]any, len(cols))
		for i := range columns {
			columnPointers[i] = &columns[i]
		}

		if err := rows.Scan(columnPointers...); err != nil {
			return nil, err
		}

		m := make(map[string]any, len(cols))
		for i, colName := range cols {
			m[colName] = normalizeScalar(columns[i])
		}

		res = append(res, m)
	}

	return res, rows.Err()
}
