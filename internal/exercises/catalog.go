package exercises

// catalog is indexed by Exercise.Index. The last exercise teaches how to
// emulate a full outer join on engines that lack one.
var catalog = []Exercise{
	{
		Topic:    TopicFiltering,
		Prompt:   "List every book title with its year.",
		Solution: "SELECT title, year FROM books;",
	},
	{
		Topic:    TopicFiltering,
		Prompt:   "Movies whose genre is 'Sci-Fi'.",
		Solution: "SELECT title, year FROM movies WHERE genre='Sci-Fi';",
	},
	{
		Topic:    TopicFiltering,
		Prompt:   "Books rated 4.5 or higher.",
		Solution: "SELECT title, author_id, rating FROM books WHERE rating >= 4.5;",
	},
	{
		Topic:    TopicRanges,
		Prompt:   "Movies released between 2015 and 2021.",
		Solution: "SELECT title, year FROM movies WHERE year BETWEEN 2015 AND 2021;",
	},
	{
		Topic:    TopicRanges,
		Prompt:   "Books with 250 to 400 pages and a rating above 4.0.",
		Solution: "SELECT title, pages, rating FROM books WHERE pages BETWEEN 250 AND 400 AND rating > 4.0;",
	},
	{
		Topic:    TopicSorting,
		Prompt:   "Top 5 movies by rating.",
		Solution: "SELECT title, rating FROM movies ORDER BY rating DESC LIMIT 5;",
	},
	{
		Topic:    TopicSets,
		Prompt:   "Books in the 'Drame' or 'Romance' genre.",
		Solution: "SELECT title, genre, year FROM books WHERE genre IN ('Drame','Romance');",
	},
	{
		Topic:    TopicSets,
		Prompt:   "Mystère or Thriller movies rated 7 or higher.",
		Solution: "SELECT title, genre, rating FROM movies WHERE genre IN ('Mystère','Thriller') AND rating >= 7.0;",
	},
	{
		Topic:    TopicFiltering,
		Prompt:   "Books published before 2010.",
		Solution: "SELECT title, year FROM books WHERE year < 2010;",
	},
	{
		Topic:    TopicRanges,
		Prompt:   "Movies lasting between 100 and 130 minutes.",
		Solution: "SELECT title, duration_minutes, genre FROM movies WHERE duration_minutes BETWEEN 100 AND 130;",
	},
	{
		Topic:    TopicSorting,
		Prompt:   "The 3 most recent books.",
		Solution: "SELECT title, year FROM books ORDER BY year DESC LIMIT 3;",
	},
	{
		Topic:    TopicFiltering,
		Prompt:   "Books rated below 4.0 OR shorter than 250 pages.",
		Solution: "SELECT title, rating, pages FROM books WHERE rating < 4.0 OR pages < 250;",
	},
	{
		Topic:    TopicSets,
		Prompt:   "Movies released in 2019 or 2020.",
		Solution: "SELECT title, year, rating FROM movies WHERE year IN (2019, 2020);",
	},
	{
		Topic:    TopicSets,
		Prompt:   "Books by authors 1, 3 and 5 rated 4.0 or higher.",
		Solution: "SELECT * FROM books WHERE author_id IN (1,3,5) AND rating >= 4.0;",
	},
	{
		Topic:    TopicSorting,
		Prompt:   "All movies sorted by genre (ASC), then rating (DESC).",
		Solution: "SELECT * FROM movies ORDER BY genre ASC, rating DESC;",
	},
	{
		Topic:    TopicJoins,
		Prompt:   "Books with their author and the author's country.",
		Solution: "SELECT b.title, a.name AS author, a.country FROM books b JOIN authors a ON a.id = b.author_id;",
	},
	{
		Topic:    TopicJoins,
		Prompt:   "Movies with the director's name (LEFT JOIN).",
		Solution: "SELECT m.title, d.name AS director FROM movies m LEFT JOIN directors d ON d.id = m.director_id;",
	},
	{
		Topic:    TopicAggregation,
		Prompt:   "Number of books per author (authors without books included).",
		Solution: "SELECT a.name, COUNT(b.id) AS total_books FROM authors a LEFT JOIN books b ON b.author_id = a.id GROUP BY a.name;",
	},
	{
		Topic:    TopicAggregation,
		Prompt:   "Average rating per director (at least one movie).",
		Solution: "SELECT d.name, AVG(m.rating) AS avg_rating FROM directors d JOIN movies m ON m.director_id = d.id GROUP BY d.name;",
	},
	{
		Topic:  TopicOuterJoin,
		Prompt: "Per country, the number of authors and of directors (simulated FULL JOIN).",
		Solution: "-- SQLite has no FULL JOIN: emulate it with UNION + LEFT JOIN.\n" +
			"WITH a AS (SELECT country, COUNT(*) AS total_authors FROM authors GROUP BY country),\n" +
			"     d AS (SELECT country, COUNT(*) AS total_directors FROM directors GROUP BY country),\n" +
			"     all_c AS (SELECT country FROM a UNION SELECT country FROM d)\n" +
			"SELECT all_c.country,\n" +
			"       COALESCE(a.total_authors, 0) AS total_authors,\n" +
			"       COALESCE(d.total_directors, 0) AS total_directors\n" +
			"FROM all_c\n" +
			"LEFT JOIN a ON a.country = all_c.country\n" +
			"LEFT JOIN d ON d.country = all_c.country\n" +
			"ORDER BY all_c.country;",
		Hint: "SQLite does not support FULL JOIN. Take the union of the countries present in both sides, then LEFT JOIN each side onto it (see the solution).",
	},
}

func init() {
	for i := range catalog {
		catalog[i].Index = i
	}
}
