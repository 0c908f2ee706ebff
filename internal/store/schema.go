package store

const schema = `
CREATE TABLE IF NOT EXISTS strings (
    content_hash TEXT PRIMARY KEY,
    value TEXT NOT NULL UNIQUE,
    length INTEGER NOT NULL,
    is_palindrome BOOLEAN NOT NULL,
    unique_characters INTEGER NOT NULL,
    word_count INTEGER NOT NULL,
    character_frequency TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_strings_palindrome ON strings(is_palindrome);
CREATE INDEX IF NOT EXISTS idx_strings_length ON strings(length);
CREATE INDEX IF NOT EXISTS idx_strings_word_count ON strings(word_count);
`
