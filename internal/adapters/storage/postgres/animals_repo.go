package postgres

import (
	"context"
	"database/sql"
	"strings"

	"animal-reservations/internal/domain/animals"
	"animal-reservations/internal/platform/apperr"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var animalColumns = []string{"id", "type", "breed", "num_animals", "animal_img_url"}

type animalRow struct {
	ID         int64          `db:"id"`
	Type       string         `db:"type"`
	Breed      string         `db:"breed"`
	NumAnimals int            `db:"num_animals"`
	ImageURL   sql.NullString `db:"animal_img_url"`
}

func (r animalRow) toDomain() animals.Animal {
	return animals.Animal{
		ID:         r.ID,
		Type:       r.Type,
		Breed:      r.Breed,
		NumAnimals: r.NumAnimals,
		ImageURL:   r.ImageURL.String,
	}
}

type AnimalsRepo struct {
	db *sqlx.DB
}

func NewAnimalsRepo(db *sqlx.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) (animals.Animal, error) {
	var row animalRow
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO animals (num_animals, type, breed, animal_img_url)
		VALUES ($1,$2,$3,$4)
		RETURNING `+strings.Join(animalColumns, ", "),
		a.NumAnimals,
		a.Type,
		a.Breed,
		sql.NullString{String: a.ImageURL, Valid: a.ImageURL != ""},
	).StructScan(&row)
	if err != nil {
		return animals.Animal{}, mapError(err, nil)
	}
	return row.toDomain(), nil
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id int64) (animals.Animal, error) {
	var row animalRow
	err := r.db.GetContext(ctx, &row,
		`SELECT `+strings.Join(animalColumns, ", ")+` FROM animals WHERE id = $1`, id)
	if err != nil {
		return animals.Animal{}, mapError(err, apperr.ErrAnimalNotFound)
	}
	return row.toDomain(), nil
}

// List arma el WHERE según el filtro: type IN (...) sin distinguir
// mayúsculas y ILIKE sobre type/breed para la búsqueda libre.
func (r *AnimalsRepo) List(ctx context.Context, f animals.Filter) ([]animals.Animal, error) {
	b := sq.Select(animalColumns...).
		From("animals").
		OrderBy("id").
		PlaceholderFormat(sq.Dollar)

	if len(f.Types) > 0 {
		lowered := make([]string, 0, len(f.Types))
		for _, t := range f.Types {
			lowered = append(lowered, strings.ToLower(t))
		}
		b = b.Where(sq.Eq{"lower(type)": lowered})
	}
	if f.Query != "" {
		like := "%" + escapeLike(f.Query) + "%"
		b = b.Where(sq.Or{sq.ILike{"type": like}, sq.ILike{"breed": like}})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, apperr.ErrInternal.Wrap(err)
	}

	var rows []animalRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, mapError(err, nil)
	}

	out := make([]animals.Animal, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *AnimalsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM animals WHERE id = $1`, id)
	if err != nil {
		return mapError(err, nil)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.ErrAnimalNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
